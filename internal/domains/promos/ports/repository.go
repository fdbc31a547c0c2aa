package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
)

var (
	ErrNotFound      = errors.New("promo code not found")
	ErrDuplicateCode = errors.New("promo code already exists")
)

// Repository persists the admin-managed promo code set.
type Repository interface {
	Save(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error)
	GetByID(ctx context.Context, id string) (*domain.PromoCode, error)
	// GetByCode looks up the canonical (uppercase) code.
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	List(ctx context.Context) ([]*domain.PromoCode, error)
	Delete(ctx context.Context, id string) error
	// IncrementUsage bumps the used counter atomically.
	IncrementUsage(ctx context.Context, code string) error
}
