package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")

// Repository persists storefront accounts keyed by canonical email.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*domain.User, error)
}
