package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
	"github.com/Apurer/storefront-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store keyed by canonical email.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewRepository constructs an empty store, optionally seeded.
func NewRepository(seed ...*domain.User) *Repository {
	repo := &Repository{users: map[string]*domain.User{}}
	for _, user := range seed {
		if user != nil {
			_, _ = repo.Save(context.Background(), user)
		}
	}
	return repo
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[clone.Email] = &clone
	stored := clone
	return &stored, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[domain.CanonicalEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := domain.CanonicalEmail(email)
	if _, ok := r.users[key]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, key)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		list = append(list, &clone)
	}
	return list, nil
}
