package automation

import (
	"context"
	"errors"

	automationclient "github.com/Apurer/storefront-api/internal/clients/http/automation"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

// Notifier implements the outbound order notification port.
type Notifier struct {
	client     *automationclient.Client
	webhookURL string
}

// NewNotifier wires the automation HTTP client into a notifier adapter.
func NewNotifier(client *automationclient.Client, webhookURL string) *Notifier {
	return &Notifier{client: client, webhookURL: webhookURL}
}

// NotifyOrderPlaced pushes the full order record to the automation endpoint.
func (n *Notifier) NotifyOrderPlaced(ctx context.Context, order *domain.Order) error {
	if n == nil || n.client == nil {
		return errors.New("automation notifier not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	return n.client.Post(ctx, n.webhookURL, order)
}

var _ ports.Notifier = (*Notifier)(nil)
