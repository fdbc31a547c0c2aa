package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Type selects how a promo value is interpreted.
type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

var (
	ErrEmptyCode    = errors.New("promo code is required")
	ErrInvalidType  = errors.New("promo type must be percentage or fixed")
	ErrInvalidValue = errors.New("promo value must be positive")

	// Quote rejections, checked in this order.
	ErrInvalidCode  = errors.New("invalid promo code")
	ErrInactive     = errors.New("promo code is not active")
	ErrExhausted    = errors.New("promo code has no uses left")
	ErrExpired      = errors.New("promo code has expired")
	ErrBelowMinimum = errors.New("below minimum purchase")
)

// PromoCode is a discount token applied against an order subtotal.
type PromoCode struct {
	ID          string
	Code        string
	Type        Type
	Value       float64
	MinPurchase float64
	MaxUses     int
	UsedCount   int
	ExpiresAt   *time.Time
	IsActive    bool
	CreatedAt   time.Time
}

// Quote is the deterministic pricing outcome for a code and subtotal.
type Quote struct {
	Code     string
	Discount float64
	Type     Type
	Value    float64
}

// NewPromoCode validates and canonicalizes a promo definition.
func NewPromoCode(id, code string, kind Type, value, minPurchase float64, maxUses int, expiresAt *time.Time) (*PromoCode, error) {
	promo := &PromoCode{
		ID:          id,
		Code:        Canonical(code),
		Type:        kind,
		Value:       value,
		MinPurchase: minPurchase,
		MaxUses:     maxUses,
		ExpiresAt:   expiresAt,
		IsActive:    true,
	}
	if err := promo.Validate(); err != nil {
		return nil, err
	}
	return promo, nil
}

// Validate enforces invariants on the promo definition.
func (p *PromoCode) Validate() error {
	if strings.TrimSpace(p.Code) == "" {
		return ErrEmptyCode
	}
	if p.Type != TypePercentage && p.Type != TypeFixed {
		return ErrInvalidType
	}
	if p.Value <= 0 || math.IsNaN(p.Value) {
		return ErrInvalidValue
	}
	if p.Type == TypePercentage && p.Value > 100 {
		return ErrInvalidValue
	}
	if p.MinPurchase < 0 {
		return ErrInvalidValue
	}
	return nil
}

// QuoteFor computes the discount for a subtotal, pure and side-effect free.
// Usage counters are incremented by the order-creation flow, not here, so an
// abandoned quote never consumes a use.
func (p *PromoCode) QuoteFor(subtotal float64, now time.Time) (*Quote, error) {
	if !p.IsActive {
		return nil, ErrInactive
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return nil, ErrExhausted
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return nil, ErrExpired
	}
	if subtotal < p.MinPurchase {
		return nil, fmt.Errorf("%w: minimum purchase of $%.2f required", ErrBelowMinimum, p.MinPurchase)
	}
	var discount float64
	if p.Type == TypePercentage {
		discount = subtotal * p.Value / 100
	} else {
		discount = p.Value
	}
	discount = RoundMoney(discount)
	// A fixed discount larger than the cart must not drive the total negative.
	if discount > subtotal {
		discount = RoundMoney(subtotal)
	}
	return &Quote{Code: p.Code, Discount: discount, Type: p.Type, Value: p.Value}, nil
}

// Canonical uppercases and trims a promo code for case-insensitive lookup.
func Canonical(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RoundMoney rounds to 2 decimal places, half-up.
func RoundMoney(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
