package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	domainerrors "yatra/internal/domain/errors"
	"yatra/internal/domain/service"
	"yatra/internal/usecase"
)

// phrasebook holds pre-translated traveller phrases per ISO 639-1 code.
// Keyed by language, then by the English phrase.
var phrasebook = map[string]map[string]string{
	"hi": {
		"Hello":                  "नमस्ते",
		"Thank you":              "धन्यवाद",
		"How much does it cost?": "इसकी कीमत क्या है?",
		"Where is the station?":  "स्टेशन कहाँ है?",
		"I need help":            "मुझे मदद चाहिए",
		"Water, please":          "पानी दीजिए",
	},
	"bn": {
		"Hello":                  "নমস্কার",
		"Thank you":              "ধন্যবাদ",
		"How much does it cost?": "এর দাম কত?",
		"Where is the station?":  "স্টেশন কোথায়?",
		"I need help":            "আমার সাহায্য দরকার",
		"Water, please":          "জল দিন",
	},
	"ta": {
		"Hello":                  "வணக்கம்",
		"Thank you":              "நன்றி",
		"How much does it cost?": "இதன் விலை என்ன?",
		"Where is the station?":  "நிலையம் எங்கே?",
		"I need help":            "எனக்கு உதவி வேண்டும்",
		"Water, please":          "தண்ணீர் கொடுங்கள்",
	},
	"te": {
		"Hello":                  "నమస్కారం",
		"Thank you":              "ధన్యవాదాలు",
		"How much does it cost?": "దీని ధర ఎంత?",
		"Where is the station?":  "స్టేషన్ ఎక్కడ ఉంది?",
		"I need help":            "నాకు సహాయం కావాలి",
		"Water, please":          "నీళ్లు ఇవ్వండి",
	},
	"mr": {
		"Hello":                  "नमस्कार",
		"Thank you":              "धन्यवाद",
		"How much does it cost?": "याची किंमत किती आहे?",
		"Where is the station?":  "स्टेशन कुठे आहे?",
		"I need help":            "मला मदत हवी आहे",
		"Water, please":          "पाणी द्या",
	},
	"gu": {
		"Hello":                  "નમસ્તે",
		"Thank you":              "આભાર",
		"How much does it cost?": "આની કિંમત કેટલી છે?",
		"Where is the station?":  "સ્ટેશન ક્યાં છે?",
		"I need help":            "મને મદદ જોઈએ છે",
		"Water, please":          "પાણી આપો",
	},
	"kn": {
		"Hello":                  "ನಮಸ್ಕಾರ",
		"Thank you":              "ಧನ್ಯವಾದಗಳು",
		"How much does it cost?": "ಇದರ ಬೆಲೆ ಎಷ್ಟು?",
		"Where is the station?":  "ನಿಲ್ದಾಣ ಎಲ್ಲಿದೆ?",
		"I need help":            "ನನಗೆ ಸಹಾಯ ಬೇಕು",
		"Water, please":          "ನೀರು ಕೊಡಿ",
	},
	"ml": {
		"Hello":                  "നമസ്കാരം",
		"Thank you":              "നന്ദി",
		"How much does it cost?": "ഇതിന്റെ വില എത്രയാണ്?",
		"Where is the station?":  "സ്റ്റേഷൻ എവിടെയാണ്?",
		"I need help":            "എനിക്ക് സഹായം വേണം",
		"Water, please":          "വെള്ളം തരൂ",
	},
	"pa": {
		"Hello":                  "ਸਤ ਸ੍ਰੀ ਅਕਾਲ",
		"Thank you":              "ਧੰਨਵਾਦ",
		"How much does it cost?": "ਇਸਦੀ ਕੀਮਤ ਕਿੰਨੀ ਹੈ?",
		"Where is the station?":  "ਸਟੇਸ਼ਨ ਕਿੱਥੇ ਹੈ?",
		"I need help":            "ਮੈਨੂੰ ਮਦਦ ਚਾਹੀਦੀ ਹੈ",
		"Water, please":          "ਪਾਣੀ ਦਿਓ",
	},
	"ur": {
		"Hello":                  "السلام علیکم",
		"Thank you":              "شکریہ",
		"How much does it cost?": "اس کی قیمت کیا ہے؟",
		"Where is the station?":  "اسٹیشن کہاں ہے؟",
		"I need help":            "مجھے مدد چاہیے",
		"Water, please":          "پانی دیجیے",
	},
}

type translateService struct {
	translator service.Translator
	logger     *slog.Logger
}

// NewTranslateService creates the translation use case. The translator may
// be nil; the phrasebook then serves what it can.
func NewTranslateService(translator service.Translator, logger *slog.Logger) usecase.TranslateUsecase {
	return &translateService{
		translator: translator,
		logger:     logger,
	}
}

// Translate serves exact phrasebook matches locally and sends everything
// else to the translation gateway.
func (s *translateService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(targetLang))
	phrases, ok := phrasebook[lang]
	if !ok {
		return "", domainerrors.ErrValidationFailed.WithDetails("unsupported target language: " + targetLang)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("text is required")
	}

	if translated, ok := phrases[trimmed]; ok {
		return translated, nil
	}

	if s.translator == nil {
		return "", domainerrors.ErrTranslationUnavailable
	}

	translated, err := s.translator.Translate(ctx, trimmed, lang)
	if err != nil {
		s.logger.Warn("translation gateway failed",
			slog.String("target_lang", lang),
			slog.Any("error", err))
		return "", domainerrors.ErrTranslationUnavailable.WithDetails(err.Error())
	}

	return translated, nil
}

// Phrasebook returns the common traveller phrases for a language.
func (s *translateService) Phrasebook(ctx context.Context, lang string) ([]usecase.Phrase, error) {
	phrases, ok := phrasebook[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unsupported target language: " + lang)
	}

	out := make([]usecase.Phrase, 0, len(phrases))
	for english, translated := range phrases {
		out = append(out, usecase.Phrase{English: english, Translated: translated})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].English < out[j].English })

	return out, nil
}

// Languages lists the supported phrasebook language codes.
func (s *translateService) Languages(ctx context.Context) ([]string, error) {
	codes := make([]string, 0, len(phrasebook))
	for code := range phrasebook {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes, nil
}
