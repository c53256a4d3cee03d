package impl

import (
	"context"
	"math"
	"strings"

	domainerrors "yatra/internal/domain/errors"
	"yatra/internal/usecase"
)

// inrRates holds how many INR one unit of each currency buys.
var inrRates = map[string]float64{
	"INR": 1.0,
	"USD": 83.20,
	"EUR": 90.45,
	"GBP": 105.60,
	"JPY": 0.56,
	"AUD": 55.10,
	"SGD": 61.80,
	"AED": 22.65,
}

type currencyService struct{}

// NewCurrencyService creates the currency conversion use case over the
// built-in rate table.
func NewCurrencyService() usecase.CurrencyUsecase {
	return &currencyService{}
}

// Convert converts an amount between two supported currencies via INR.
func (s *currencyService) Convert(ctx context.Context, amount float64, from, to string) (*usecase.Conversion, error) {
	fromCode := strings.ToUpper(strings.TrimSpace(from))
	toCode := strings.ToUpper(strings.TrimSpace(to))

	fromRate, ok := inrRates[fromCode]
	if !ok {
		return nil, domainerrors.ErrUnknownCurrency.WithDetails(fromCode)
	}
	toRate, ok := inrRates[toCode]
	if !ok {
		return nil, domainerrors.ErrUnknownCurrency.WithDetails(toCode)
	}
	if amount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("amount must not be negative")
	}

	rate := fromRate / toRate

	return &usecase.Conversion{
		From:      fromCode,
		To:        toCode,
		Amount:    amount,
		Converted: math.Round(amount*rate*100) / 100,
		Rate:      rate,
	}, nil
}

// Rates returns the INR value of one unit of every supported currency.
func (s *currencyService) Rates(ctx context.Context) (map[string]float64, error) {
	out := make(map[string]float64, len(inrRates))
	for code, rate := range inrRates {
		out[code] = rate
	}

	return out, nil
}
