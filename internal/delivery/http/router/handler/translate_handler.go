package handler

import (
	"log/slog"
	"net/http"

	"yatra/internal/delivery/http/response"
	"yatra/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TranslateHandler exposes translation and the traveller phrasebook.
type TranslateHandler struct {
	uc     usecase.TranslateUsecase
	logger *slog.Logger
}

// NewTranslateHandler is the constructor for TranslateHandler, injected by Fx.
func NewTranslateHandler(uc usecase.TranslateUsecase, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{
		uc:     uc,
		logger: logger,
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// Translate renders text into the target language.
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid translation input")
	}

	translated, err := h.uc.Translate(c.Request().Context(), req.Text, req.TargetLang)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"text":        req.Text,
		"target_lang": req.TargetLang,
		"translated":  translated,
	}, "Translation completed successfully")
}

// Phrasebook returns the common traveller phrases for a language.
func (h *TranslateHandler) Phrasebook(c echo.Context) error {
	phrases, err := h.uc.Phrasebook(c.Request().Context(), c.Param("lang"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, phrases, "Phrasebook retrieved successfully")
}

// Languages lists the supported phrasebook language codes.
func (h *TranslateHandler) Languages(c echo.Context) error {
	langs, err := h.uc.Languages(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, langs, "Languages retrieved successfully")
}
