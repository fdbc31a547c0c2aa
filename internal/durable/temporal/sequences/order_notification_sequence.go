package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/storefront-api/internal/platform/temporal/activities/orders"
)

// RunOrderNotificationSequence executes the activities that fan an order out
// to the automation collaborator. Delivery is single-attempt: the receiver
// is a webhook, and repeated posts would duplicate downstream automation.
func RunOrderNotificationSequence(ctx workflow.Context, order *domain.Order) error {
	logger := workflow.GetLogger(ctx)
	orderID := ""
	if order != nil {
		orderID = order.ID
	}
	logger.Info("order notification sequence started", "orderId", orderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, orderactivities.NotifyOrderPlacedActivityName, order).Get(ctx, nil); err != nil {
		logger.Error("order notification sequence failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("order notification sequence completed", "orderId", orderID)
	return nil
}
