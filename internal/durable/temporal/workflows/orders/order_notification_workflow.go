package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/durable/temporal/sequences"
)

const (
	// OrderNotificationWorkflowName is the public identifier for registering the workflow.
	OrderNotificationWorkflowName = "orders.workflows.Notification"
	// OrderNotificationTaskQueue is the queue consumed by the worker processing order workflows.
	OrderNotificationTaskQueue = "ORDER_NOTIFICATION"
)

// OrderNotificationWorkflowInput captures the order payload pushed to the
// automation collaborator.
type OrderNotificationWorkflowInput struct {
	Order   *domain.Order
	TraceID string
}

// OrderNotificationWorkflow delivers the order-placed notification durably.
func OrderNotificationWorkflow(ctx workflow.Context, input OrderNotificationWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := ""
	if input.Order != nil {
		orderID = input.Order.ID
	}
	logger.Info("OrderNotificationWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	if err := sequences.RunOrderNotificationSequence(ctx, input.Order); err != nil {
		logger.Error("OrderNotificationWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("OrderNotificationWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
