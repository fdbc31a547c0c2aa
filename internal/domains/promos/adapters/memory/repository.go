package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
	"github.com/Apurer/storefront-api/internal/domains/promos/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory promo persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	promos map[string]*domain.PromoCode
	byCode map[string]string
	nextID int64
}

// NewRepository constructs an empty promo store.
func NewRepository() *Repository {
	return &Repository{
		promos: map[string]*domain.PromoCode{},
		byCode: map[string]string{},
	}
}

// NewSeededRepository constructs a store preloaded with the storefront's
// launch promos.
func NewSeededRepository() *Repository {
	repo := NewRepository()
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	seeds := []*domain.PromoCode{
		{Code: "SAVE10", Type: domain.TypePercentage, Value: 10, MinPurchase: 50, MaxUses: 100, UsedCount: 45, ExpiresAt: &expiry, IsActive: true},
		{Code: "FLAT20", Type: domain.TypeFixed, Value: 20, MinPurchase: 100, IsActive: true},
		{Code: "WELCOME15", Type: domain.TypePercentage, Value: 15, MinPurchase: 0, IsActive: true},
	}
	for _, seed := range seeds {
		_, _ = repo.Save(context.Background(), seed)
	}
	return repo
}

func (r *Repository) Save(_ context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if promo == nil {
		return nil, errors.New("promo is nil")
	}
	clone := *promo
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, taken := r.byCode[clone.Code]; taken && existingID != clone.ID {
		return nil, ports.ErrDuplicateCode
	}
	if clone.ID == "" {
		r.nextID++
		clone.ID = strconv.FormatInt(r.nextID, 10)
	}
	if previous, ok := r.promos[clone.ID]; ok && previous.Code != clone.Code {
		delete(r.byCode, previous.Code)
	}
	r.promos[clone.ID] = &clone
	r.byCode[clone.Code] = clone.ID
	stored := clone
	return &stored, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	promo, ok := r.promos[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *promo
	return &clone, nil
}

func (r *Repository) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.promos[id]
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.PromoCode, 0, len(r.promos))
	for _, promo := range r.promos {
		clone := *promo
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	promo, ok := r.promos[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byCode, promo.Code)
	delete(r.promos, id)
	return nil
}

func (r *Repository) IncrementUsage(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byCode[code]
	if !ok {
		return ports.ErrNotFound
	}
	clone := *r.promos[id]
	clone.UsedCount++
	r.promos[id] = &clone
	return nil
}
