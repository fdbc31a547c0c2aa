package ports

import "context"

// PromoQuote is the discount agreed for a code and subtotal.
type PromoQuote struct {
	Code     string
	Discount float64
	Type     string
	Value    float64
}

// PromoQuoter is the pricing collaborator consulted during order creation.
// Quote is pure; RecordUse belongs to the creation transaction so abandoned
// quotes never consume uses.
type PromoQuoter interface {
	Quote(ctx context.Context, code string, subtotal float64) (*PromoQuote, error)
	RecordUse(ctx context.Context, code string) error
}
