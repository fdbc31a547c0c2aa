package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
)

var (
	ErrNotFound            = errors.New("contact submission not found")
	ErrDuplicateSubscriber = errors.New("email already subscribed")
)

// Repository persists contact-form submissions.
type Repository interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	// List returns submissions newest first, optionally filtered by status.
	List(ctx context.Context, status domain.Status) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// SubscriberRepository persists newsletter signups.
type SubscriberRepository interface {
	// Create stores a signup, failing with ErrDuplicateSubscriber when the
	// email is already on the list.
	Create(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error)
	List(ctx context.Context) ([]*domain.Subscriber, error)
}
