package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
)

// ErrSessionNotFound rejects unknown or already-removed tokens.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists opaque session tokens.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	// Lookup resolves a bearer token to its session. Expiry is the caller's
	// concern; stores return what they hold.
	Lookup(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes sessions past their expiry and reports how many.
	PurgeExpired(ctx context.Context) (int64, error)
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ *domain.Session) error { return nil }
func (noopSessionStore) Lookup(_ context.Context, _ string) (*domain.Session, error) {
	return nil, ErrSessionNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error      { return nil }
func (noopSessionStore) PurgeExpired(_ context.Context) (int64, error) { return 0, nil }
