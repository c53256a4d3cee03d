package impl

import (
	"context"
	"testing"

	domainerrors "yatra/internal/domain/errors"
	"yatra/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTranslator echoes with a language tag or fails.
type fakeTranslator struct {
	err    error
	called bool
}

func (t *fakeTranslator) Translate(_ context.Context, text, targetLang string) (string, error) {
	t.called = true
	if t.err != nil {
		return "", t.err
	}
	return "[" + targetLang + "] " + text, nil
}

func TestTranslate_PhrasebookServedLocally(t *testing.T) {
	translator := &fakeTranslator{}
	svc := NewTranslateService(translator, discardLogger())

	out, err := svc.Translate(context.Background(), "Thank you", "hi")
	require.NoError(t, err)
	assert.Equal(t, "धन्यवाद", out)
	assert.False(t, translator.called)
}

func TestTranslate_GatewayForUnknownText(t *testing.T) {
	translator := &fakeTranslator{}
	svc := NewTranslateService(translator, discardLogger())

	out, err := svc.Translate(context.Background(), "Where can I rent a bicycle?", "ta")
	require.NoError(t, err)
	assert.Equal(t, "[ta] Where can I rent a bicycle?", out)
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	svc := NewTranslateService(&fakeTranslator{}, discardLogger())

	_, err := svc.Translate(context.Background(), "Hello", "fr")
	assert.Error(t, err)
}

func TestTranslate_GatewayFailureSurfacesUnavailable(t *testing.T) {
	translator := &fakeTranslator{err: errors.New("quota exceeded")}
	svc := NewTranslateService(translator, discardLogger())

	_, err := svc.Translate(context.Background(), "Where can I rent a bicycle?", "hi")
	assert.ErrorContains(t, err, domainerrors.ErrTranslationUnavailable.Message())
}

func TestTranslate_NilTranslatorStillServesPhrasebook(t *testing.T) {
	svc := NewTranslateService(nil, discardLogger())

	out, err := svc.Translate(context.Background(), "Hello", "pa")
	require.NoError(t, err)
	assert.Equal(t, "ਸਤ ਸ੍ਰੀ ਅਕਾਲ", out)

	_, err = svc.Translate(context.Background(), "anything else", "pa")
	assert.Error(t, err)
}

func TestPhrasebook_SortedByEnglish(t *testing.T) {
	svc := NewTranslateService(nil, discardLogger())

	phrases, err := svc.Phrasebook(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, phrases, 6)
	for i := 1; i < len(phrases); i++ {
		assert.Less(t, phrases[i-1].English, phrases[i].English)
	}
}

func TestLanguages_ListsAllCodes(t *testing.T) {
	svc := NewTranslateService(nil, discardLogger())

	langs, err := svc.Languages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bn", "gu", "hi", "kn", "ml", "mr", "pa", "ta", "te", "ur"}, langs)
}
