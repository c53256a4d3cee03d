package impl

import (
	"context"
	"testing"

	domainerrors "yatra/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_ThroughINR(t *testing.T) {
	svc := NewCurrencyService()

	conv, err := svc.Convert(context.Background(), 100, "usd", "inr")
	require.NoError(t, err)
	assert.Equal(t, "USD", conv.From)
	assert.Equal(t, "INR", conv.To)
	assert.InDelta(t, 8320.0, conv.Converted, 0.01)

	back, err := svc.Convert(context.Background(), conv.Converted, "INR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, back.Converted, 0.01)
}

func TestConvert_CrossRate(t *testing.T) {
	svc := NewCurrencyService()

	conv, err := svc.Convert(context.Background(), 50, "EUR", "AED")
	require.NoError(t, err)
	assert.InDelta(t, 50*90.45/22.65, conv.Converted, 0.01)
}

func TestConvert_SameCurrencyIsIdentity(t *testing.T) {
	svc := NewCurrencyService()

	conv, err := svc.Convert(context.Background(), 42.5, "INR", "INR")
	require.NoError(t, err)
	assert.Equal(t, 42.5, conv.Converted)
	assert.Equal(t, 1.0, conv.Rate)
}

func TestConvert_RejectsUnknownCurrencyAndNegativeAmount(t *testing.T) {
	svc := NewCurrencyService()

	_, err := svc.Convert(context.Background(), 10, "XYZ", "INR")
	assert.ErrorContains(t, err, domainerrors.ErrUnknownCurrency.Message())

	_, err = svc.Convert(context.Background(), 10, "INR", "XYZ")
	assert.Error(t, err)

	_, err = svc.Convert(context.Background(), -5, "INR", "USD")
	assert.Error(t, err)
}

func TestRates_ReturnsCopy(t *testing.T) {
	svc := NewCurrencyService()

	rates, err := svc.Rates(context.Background())
	require.NoError(t, err)
	assert.Contains(t, rates, "INR")
	assert.Contains(t, rates, "USD")

	rates["USD"] = 1
	again, err := svc.Rates(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, 1.0, again["USD"])
}
