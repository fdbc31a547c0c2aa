package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateIntent guards the one-order-per-payment-intent invariant.
	ErrDuplicateIntent = errors.New("payment intent already bound to an order")
)

// Repository is the authoritative order store. Mutations are atomic with
// respect to each other; the state machine is applied inside the store's
// critical section so racing writers cannot both win.
type Repository interface {
	// Create assigns the ORD- identifier and creation timestamp, persists the
	// draft with status processing, and returns the stored record.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error)
	// ListByCustomerEmail matches the stored customer email case-insensitively.
	ListByCustomerEmail(ctx context.Context, email string) ([]*domain.Order, error)
	List(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	// UpdateStatus applies the transition under the record lock and returns
	// the updated order, or domain.ErrInvalidTransition on an illegal move.
	UpdateStatus(ctx context.Context, id string, next domain.Status, extra domain.StatusExtra) (*domain.Order, error)
	// ConfirmPayment stamps PaidAt exactly once.
	ConfirmPayment(ctx context.Context, id string) (*domain.Order, error)
}
