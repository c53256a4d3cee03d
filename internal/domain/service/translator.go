package service

import "context"

// Translator renders traveller-facing text into a target language.
type Translator interface {
	// Translate returns the text in the target language (ISO 639-1 code).
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
