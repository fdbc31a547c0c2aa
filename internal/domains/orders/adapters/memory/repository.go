package memory

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Repository is an in-memory order persistence adapter. All mutations run
// under the write lock, so transitions cannot interleave.
type Repository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	byIntent map[string]string
	policy   domain.TransitionPolicy
	now      func() time.Time
}

// NewRepository constructs an empty store with the given transition policy.
func NewRepository(policy domain.TransitionPolicy) *Repository {
	return &Repository{
		orders:   map[string]*domain.Order{},
		byIntent: map[string]string{},
		policy:   policy,
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.PaymentIntentID != "" {
		if _, taken := r.byIntent[clone.PaymentIntentID]; taken {
			return nil, ports.ErrDuplicateIntent
		}
	}
	id, err := r.nextIDLocked()
	if err != nil {
		return nil, err
	}
	clone.ID = id
	clone.Status = domain.StatusProcessing
	clone.CreatedAt = r.now().UTC()
	clone.Version = 1
	r.orders[clone.ID] = &clone
	if clone.PaymentIntentID != "" {
		r.byIntent[clone.PaymentIntentID] = clone.ID
	}
	stored := clone
	return &stored, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) GetByPaymentIntentID(_ context.Context, intentID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byIntent[intentID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.orders[id]
	return &clone, nil
}

func (r *Repository) ListByCustomerEmail(_ context.Context, email string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if strings.EqualFold(order.Customer.Email, email) {
			clone := *order
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) List(_ context.Context, status domain.Status) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if status != "" && order.Status != status {
			continue
		}
		clone := *order
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id string, next domain.Status, extra domain.StatusExtra) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	if err := clone.TransitionTo(next, extra, r.policy, r.now().UTC()); err != nil {
		return nil, err
	}
	r.orders[id] = &clone
	stored := clone
	return &stored, nil
}

func (r *Repository) ConfirmPayment(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	clone.ConfirmPayment(r.now().UTC())
	r.orders[id] = &clone
	stored := clone
	return &stored, nil
}

// nextIDLocked draws ORD-XXXXXXXX identifiers from crypto/rand and retries
// on the (unlikely) collision with an existing order.
func (r *Repository) nextIDLocked() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate order id: %w", err)
		}
		suffix := make([]byte, 8)
		for i, b := range buf {
			suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
		}
		id := "ORD-" + string(suffix)
		if _, exists := r.orders[id]; !exists {
			return id, nil
		}
	}
	return "", errors.New("exhausted order id attempts")
}
