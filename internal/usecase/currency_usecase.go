package usecase

import "context"

// Conversion is the result of a currency conversion.
type Conversion struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Converted float64 `json:"converted"`
	Rate      float64 `json:"rate"`
}

// CurrencyUsecase defines the interface for currency conversion use cases
type CurrencyUsecase interface {
	// Convert converts an amount between two supported currencies.
	Convert(ctx context.Context, amount float64, from, to string) (*Conversion, error)

	// Rates returns the INR-based rate for every supported currency code.
	Rates(ctx context.Context) (map[string]float64, error)
}
