package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
	"github.com/Apurer/storefront-api/internal/domains/users/ports"
)

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Service exposes account and session use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
}

// Option configures optional behavior.
type Option func(*Service)

// WithSessionTTL overrides the session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the users service with its dependencies.
func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{repo: repo, sessions: sessions, ttl: DefaultSessionTTL, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register persists a new account.
func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByEmail fetches the account behind a canonical email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, domain.CanonicalEmail(email))
}

// Login checks the credentials and mints an opaque session token. Unknown
// accounts and wrong passwords share the same rejection.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = domain.CanonicalEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	now := s.now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout invalidates the token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Authenticate resolves the bearer token. Expired sessions are dropped from
// the store and rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrSessionNotFound
	}
	session, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ports.ErrSessionNotFound
	}
	return session, nil
}

var _ ports.Service = (*Service)(nil)
