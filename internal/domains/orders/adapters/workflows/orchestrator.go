package workflows

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/storefront-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.NotificationDispatcher = (*TemporalDispatcher)(nil)
	_ ports.NotificationDispatcher = (*InlineDispatcher)(nil)
)

// TemporalDispatcher hands order notifications to a Temporal cluster.
type TemporalDispatcher struct {
	client    client.Client
	taskQueue string
	logger    *slog.Logger
}

// NewTemporalDispatcher wires a Temporal client into the dispatcher.
func NewTemporalDispatcher(c client.Client, logger *slog.Logger) *TemporalDispatcher {
	return &TemporalDispatcher{client: c, taskQueue: orderworkflows.OrderNotificationTaskQueue, logger: logger}
}

// DispatchOrderPlaced starts the notification workflow without waiting for
// its result. A start failure is logged and swallowed; notification delivery
// must never fail order creation.
func (d *TemporalDispatcher) DispatchOrderPlaced(ctx context.Context, order *domain.Order) {
	if d == nil || d.client == nil || order == nil {
		return
	}
	options := client.StartWorkflowOptions{
		ID:        "order-notification-" + order.ID,
		TaskQueue: d.taskQueue,
	}
	_, err := d.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderNotificationWorkflowName,
		orderworkflows.OrderNotificationWorkflowInput{Order: order},
	)
	if err == nil {
		return
	}
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		// A retried create reuses the deterministic workflow ID, so the
		// first start already owns delivery.
		if d.logger != nil {
			d.logger.Debug("order notification workflow already started",
				slog.String("order.id", order.ID), slog.String("run.id", alreadyStarted.RunId))
		}
		return
	}
	if d.logger != nil {
		d.logger.Warn("failed to start order notification workflow",
			slog.String("order.id", order.ID), slog.String("error", err.Error()))
	}
}

// InlineDispatcher posts the notification from a goroutine, useful for dev
// setups without a Temporal cluster.
type InlineDispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
	timeout  time.Duration
}

// NewInlineDispatcher wraps the notifier for direct asynchronous delivery.
func NewInlineDispatcher(notifier ports.Notifier, logger *slog.Logger) *InlineDispatcher {
	return &InlineDispatcher{notifier: notifier, logger: logger, timeout: 5 * time.Second}
}

// DispatchOrderPlaced fires the notification on a detached context so the
// client-visible response never blocks on the collaborator.
func (d *InlineDispatcher) DispatchOrderPlaced(_ context.Context, order *domain.Order) {
	if d == nil || d.notifier == nil || order == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.notifier.NotifyOrderPlaced(ctx, order); err != nil && d.logger != nil {
			d.logger.Warn("order notification failed",
				slog.String("order.id", order.ID), slog.String("error", err.Error()))
		}
	}()
}
