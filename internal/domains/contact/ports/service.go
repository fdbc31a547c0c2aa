package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
)

// Notifier forwards a submission to the automation webhook.
type Notifier interface {
	NotifyContactReceived(ctx context.Context, contact *domain.Contact) error
}

// SubscriberNotifier forwards a signup to the newsletter automation webhook.
type SubscriberNotifier interface {
	NotifySubscriberAdded(ctx context.Context, subscriber *domain.Subscriber) error
}

// Service exposes contact intake, newsletter signups, and admin triage.
type Service interface {
	Submit(ctx context.Context, name, email, subject, message string) (*domain.Contact, error)
	List(ctx context.Context, status domain.Status) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error

	// Subscribe records a newsletter signup. The bool reports whether a new
	// subscriber was created; an existing email is not an error.
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, bool, error)
	ListSubscribers(ctx context.Context) ([]*domain.Subscriber, error)
}
