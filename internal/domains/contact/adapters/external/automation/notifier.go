package automation

import (
	"context"
	"errors"

	automationclient "github.com/Apurer/storefront-api/internal/clients/http/automation"
	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

// Notifier implements the outbound contact notification port.
type Notifier struct {
	client     *automationclient.Client
	webhookURL string
}

// NewNotifier wires the automation HTTP client into a notifier adapter.
func NewNotifier(client *automationclient.Client, webhookURL string) *Notifier {
	return &Notifier{client: client, webhookURL: webhookURL}
}

// NotifyContactReceived pushes the submission to the automation endpoint.
func (n *Notifier) NotifyContactReceived(ctx context.Context, contact *domain.Contact) error {
	if n == nil || n.client == nil {
		return errors.New("automation notifier not configured")
	}
	if contact == nil {
		return errors.New("contact is nil")
	}
	return n.client.Post(ctx, n.webhookURL, contact)
}

var _ ports.Notifier = (*Notifier)(nil)

// SubscriberNotifier implements the outbound newsletter notification port.
type SubscriberNotifier struct {
	client     *automationclient.Client
	webhookURL string
}

// NewSubscriberNotifier wires the automation HTTP client into a newsletter notifier.
func NewSubscriberNotifier(client *automationclient.Client, webhookURL string) *SubscriberNotifier {
	return &SubscriberNotifier{client: client, webhookURL: webhookURL}
}

// NotifySubscriberAdded pushes the signup to the automation endpoint.
func (n *SubscriberNotifier) NotifySubscriberAdded(ctx context.Context, subscriber *domain.Subscriber) error {
	if n == nil || n.client == nil {
		return errors.New("automation notifier not configured")
	}
	if subscriber == nil {
		return errors.New("subscriber is nil")
	}
	return n.client.Post(ctx, n.webhookURL, subscriber)
}

var _ ports.SubscriberNotifier = (*SubscriberNotifier)(nil)
