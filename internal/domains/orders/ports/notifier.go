package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

// Notifier pushes a placed order to the external automation collaborator.
// Delivery is best effort: callers log failures and continue.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order *domain.Order) error
}

// NotificationDispatcher hands the notification off asynchronously, either
// inline (goroutine) or through a durable workflow.
type NotificationDispatcher interface {
	DispatchOrderPlaced(ctx context.Context, order *domain.Order)
}
