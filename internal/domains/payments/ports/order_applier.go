package ports

import (
	"context"
	"errors"
)

// ErrNoMatchingOrder signals the intent id is not bound to any stored order.
// The reconciler acknowledges these; events can arrive before the client
// finishes placing the order, or reference carts that were abandoned.
var ErrNoMatchingOrder = errors.New("no order for payment intent")

// OrderApplier mutates the matched order for a payment outcome.
type OrderApplier interface {
	// ConfirmByIntent stamps the payment confirmation on the matched order.
	ConfirmByIntent(ctx context.Context, intentID string) (orderID string, err error)
	// FailByIntent moves the matched order into the failed-payment state.
	FailByIntent(ctx context.Context, intentID string) (orderID string, err error)
}
