package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

// NotifyOrderPlacedActivityName pushes an order to the automation collaborator.
const NotifyOrderPlacedActivityName = "orders.activities.NotifyOrderPlaced"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	notifier ordersports.Notifier
}

// NewActivities wires the orders collaborators into the Temporal activities bundle.
func NewActivities(notifier ordersports.Notifier) *Activities {
	return &Activities{notifier: notifier}
}

// NotifyOrderPlaced posts the order payload to the configured automation endpoint.
func (a *Activities) NotifyOrderPlaced(ctx context.Context, order *ordersdomain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		return errors.New("order notification activity not initialized")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	if a.notifier == nil {
		logger.Info("automation notifier not configured; skipping", "orderId", order.ID)
		return nil
	}
	logger.Info("NotifyOrderPlaced activity started", "orderId", order.ID)
	if err := a.notifier.NotifyOrderPlaced(ctx, order); err != nil {
		logger.Error("NotifyOrderPlaced activity failed", "orderId", order.ID, "error", err)
		return err
	}
	logger.Info("NotifyOrderPlaced activity completed", "orderId", order.ID)
	return nil
}
