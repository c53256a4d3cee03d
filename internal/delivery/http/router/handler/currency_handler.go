package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"yatra/internal/delivery/http/response"
	"yatra/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CurrencyHandler exposes currency conversion.
type CurrencyHandler struct {
	uc     usecase.CurrencyUsecase
	logger *slog.Logger
}

// NewCurrencyHandler is the constructor for CurrencyHandler, injected by Fx.
func NewCurrencyHandler(uc usecase.CurrencyUsecase, logger *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		uc:     uc,
		logger: logger,
	}
}

// Convert converts an amount between two currencies.
func (h *CurrencyHandler) Convert(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "amount must be a number")
	}

	conversion, err := h.uc.Convert(c.Request().Context(), amount, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, conversion, "Conversion computed successfully")
}

// Rates returns the INR-based rate table.
func (h *CurrencyHandler) Rates(c echo.Context) error {
	rates, err := h.uc.Rates(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rates, "Rates retrieved successfully")
}
