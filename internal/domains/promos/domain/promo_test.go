package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func percentPromo(value, minPurchase float64) *PromoCode {
	return &PromoCode{Code: "SAVE10", Type: TypePercentage, Value: value, MinPurchase: minPurchase, IsActive: true}
}

func TestNewPromoCode_Validation(t *testing.T) {
	_, err := NewPromoCode("1", "  ", TypePercentage, 10, 0, 0, nil)
	require.ErrorIs(t, err, ErrEmptyCode)

	_, err = NewPromoCode("1", "X", Type("bogus"), 10, 0, 0, nil)
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = NewPromoCode("1", "X", TypePercentage, 0, 0, 0, nil)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewPromoCode("1", "X", TypePercentage, 150, 0, 0, nil)
	require.ErrorIs(t, err, ErrInvalidValue)

	promo, err := NewPromoCode("1", " save10 ", TypePercentage, 10, 50, 100, nil)
	require.NoError(t, err)
	require.Equal(t, "SAVE10", promo.Code)
	require.True(t, promo.IsActive)
}

func TestQuoteFor_PercentageAndFixed(t *testing.T) {
	now := time.Now()

	quote, err := percentPromo(10, 50).QuoteFor(100, now)
	require.NoError(t, err)
	require.Equal(t, 10.00, quote.Discount)
	require.Equal(t, TypePercentage, quote.Type)

	flat := &PromoCode{Code: "FLAT20", Type: TypeFixed, Value: 20, MinPurchase: 100, IsActive: true}
	quote, err = flat.QuoteFor(100, now)
	require.NoError(t, err)
	require.Equal(t, 20.00, quote.Discount)
}

func TestQuoteFor_RoundsHalfUp(t *testing.T) {
	promo := percentPromo(15, 0)
	quote, err := promo.QuoteFor(33.33, time.Now())
	require.NoError(t, err)
	// 33.33 * 0.15 = 4.9995, half-up to 5.00
	require.Equal(t, 5.00, quote.Discount)
}

func TestQuoteFor_ClampsToSubtotal(t *testing.T) {
	flat := &PromoCode{Code: "FLAT20", Type: TypeFixed, Value: 20, IsActive: true}
	quote, err := flat.QuoteFor(12.50, time.Now())
	require.NoError(t, err)
	require.Equal(t, 12.50, quote.Discount)
}

func TestQuoteFor_RejectionOrder(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	inactive := percentPromo(10, 50)
	inactive.IsActive = false
	inactive.UsedCount = 999
	inactive.MaxUses = 1
	inactive.ExpiresAt = &past
	_, err := inactive.QuoteFor(10, now)
	require.ErrorIs(t, err, ErrInactive)

	exhausted := percentPromo(10, 50)
	exhausted.MaxUses = 5
	exhausted.UsedCount = 5
	exhausted.ExpiresAt = &past
	_, err = exhausted.QuoteFor(10, now)
	require.ErrorIs(t, err, ErrExhausted)

	expired := percentPromo(10, 50)
	expired.ExpiresAt = &past
	_, err = expired.QuoteFor(10, now)
	require.ErrorIs(t, err, ErrExpired)

	_, err = percentPromo(10, 50).QuoteFor(49.99, now)
	require.ErrorIs(t, err, ErrBelowMinimum)
	require.Contains(t, err.Error(), "$50.00")
}

func TestQuoteFor_UnlimitedUses(t *testing.T) {
	promo := percentPromo(10, 0)
	promo.MaxUses = 0
	promo.UsedCount = 100000
	_, err := promo.QuoteFor(10, time.Now())
	require.NoError(t, err)
}

func TestQuoteFor_DoesNotMutate(t *testing.T) {
	promo := percentPromo(10, 0)
	promo.UsedCount = 3
	_, err := promo.QuoteFor(100, time.Now())
	require.NoError(t, err)
	require.Equal(t, 3, promo.UsedCount)
}

func TestRoundMoney(t *testing.T) {
	require.Equal(t, 0.13, RoundMoney(0.125))
	require.Equal(t, 4.99, RoundMoney(4.994))
	require.Equal(t, 5.00, RoundMoney(4.996))
}
