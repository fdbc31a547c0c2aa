// Package orders adapts the orders bounded context to the applier port the
// payment reconciler consumes.
package orders

import (
	"context"
	"errors"
	"fmt"

	orderdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

var _ ports.OrderApplier = (*Applier)(nil)

// Applier resolves payment intents to orders and applies payment outcomes.
type Applier struct {
	repo orderports.Repository
}

// NewApplier wires the adapter with the order repository.
func NewApplier(repo orderports.Repository) *Applier {
	return &Applier{repo: repo}
}

// ConfirmByIntent stamps the payment confirmation; the order stays in
// processing, fulfillment advances it separately.
func (a *Applier) ConfirmByIntent(ctx context.Context, intentID string) (string, error) {
	order, err := a.repo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, orderports.ErrNotFound) {
			return "", ports.ErrNoMatchingOrder
		}
		return "", err
	}
	if _, err := a.repo.ConfirmPayment(ctx, order.ID); err != nil {
		return "", fmt.Errorf("confirm payment for %s: %w", order.ID, err)
	}
	return order.ID, nil
}

// FailByIntent transitions the matched order into the failed-payment state.
// An order already past processing keeps its state; the late failure event is
// treated as matched but inapplicable.
func (a *Applier) FailByIntent(ctx context.Context, intentID string) (string, error) {
	order, err := a.repo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, orderports.ErrNotFound) {
			return "", ports.ErrNoMatchingOrder
		}
		return "", err
	}
	_, err = a.repo.UpdateStatus(ctx, order.ID, orderdomain.StatusPaymentFailed, orderdomain.StatusExtra{})
	if err != nil && !errors.Is(err, orderdomain.ErrInvalidTransition) {
		return "", fmt.Errorf("fail payment for %s: %w", order.ID, err)
	}
	return order.ID, nil
}
