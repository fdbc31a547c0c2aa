package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory contact submission store.
type Repository struct {
	mu       sync.RWMutex
	contacts map[string]*domain.Contact
}

// NewRepository constructs an empty store.
func NewRepository() *Repository {
	return &Repository{contacts: map[string]*domain.Contact{}}
}

func (r *Repository) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	clone := *contact
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[clone.ID] = &clone
	stored := clone
	return &stored, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *contact
	return &clone, nil
}

func (r *Repository) List(_ context.Context, status domain.Status) ([]*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		if status != "" && contact.Status != status {
			continue
		}
		clone := *contact
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *contact
	if err := clone.SetStatus(status); err != nil {
		return nil, err
	}
	r.contacts[id] = &clone
	updated := clone
	return &updated, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}
