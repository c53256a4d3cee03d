package llm

import (
	"context"
	"fmt"
	"strings"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
)

var languageNames = map[string]string{
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"ur": "Urdu",
	"en": "English",
}

type gatewayTranslator struct {
	gateway service.ChatGateway
}

// NewTranslator creates a translator backed by the chat gateway.
func NewTranslator(gateway service.ChatGateway) service.Translator {
	return &gatewayTranslator{gateway: gateway}
}

// Translate renders the text into the target language.
func (t *gatewayTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	name, ok := languageNames[strings.ToLower(targetLang)]
	if !ok {
		return "", errors.Errorf("unsupported target language: %s", targetLang)
	}

	reply, err := t.gateway.Complete(ctx, []entity.ChatMessage{
		{
			Role:    entity.RoleSystem,
			Content: fmt.Sprintf("You are a translator. Translate the user's text into %s. Reply with the translation only, no commentary.", name),
		},
		{Role: entity.RoleUser, Content: text},
	})
	if err != nil {
		return "", errors.Wrap(err, "translation failed")
	}

	return strings.TrimSpace(reply), nil
}
