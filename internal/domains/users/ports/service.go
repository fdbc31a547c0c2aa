package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
)

// Service exposes account and session use cases to adapters.
type Service interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to a live session.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}
