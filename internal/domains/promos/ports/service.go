package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
)

// Service exposes promo pricing and admin management use cases.
type Service interface {
	// Quote is the pure pricing call: code + subtotal in, discount or a
	// rejection out. It never mutates usage counters.
	Quote(ctx context.Context, code string, subtotal float64) (*domain.Quote, error)
	// RecordUse consumes one use of the code; invoked by order creation.
	RecordUse(ctx context.Context, code string) error

	Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error)
	Update(ctx context.Context, id string, promo *domain.PromoCode) (*domain.PromoCode, error)
	List(ctx context.Context) ([]*domain.PromoCode, error)
	Delete(ctx context.Context, id string) error
}
