package usecase

import "context"

// Phrase is a pre-translated traveller phrase.
type Phrase struct {
	English    string `json:"english"`
	Translated string `json:"translated"`
}

// TranslateUsecase defines the interface for translation use cases
type TranslateUsecase interface {
	// Translate translates text into the target language, using the built-in
	// phrasebook first and the translation gateway for everything else.
	Translate(ctx context.Context, text, targetLang string) (string, error)

	// Phrasebook returns the common traveller phrases for a language.
	Phrasebook(ctx context.Context, lang string) ([]Phrase, error)

	// Languages lists the supported phrasebook language codes.
	Languages(ctx context.Context) ([]string, error)
}
