// Package promos adapts the promos bounded context to the pricing port the
// orders service consumes.
package promos

import (
	"context"

	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	promoports "github.com/Apurer/storefront-api/internal/domains/promos/ports"
)

var _ orderports.PromoQuoter = (*Quoter)(nil)

// Quoter delegates pricing calls to the promos service.
type Quoter struct {
	promos promoports.Service
}

// NewQuoter wires the adapter with the promos service.
func NewQuoter(promos promoports.Service) *Quoter {
	return &Quoter{promos: promos}
}

func (q *Quoter) Quote(ctx context.Context, code string, subtotal float64) (*orderports.PromoQuote, error) {
	quote, err := q.promos.Quote(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}
	return &orderports.PromoQuote{
		Code:     quote.Code,
		Discount: quote.Discount,
		Type:     string(quote.Type),
		Value:    quote.Value,
	}, nil
}

func (q *Quoter) RecordUse(ctx context.Context, code string) error {
	return q.promos.RecordUse(ctx, code)
}
