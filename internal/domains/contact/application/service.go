package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

// ErrInvalidInput signals the submission violated a domain invariant.
var ErrInvalidInput = errors.New("invalid contact input")

const notifyTimeout = 5 * time.Second

// Service handles contact intake, newsletter signups, and admin triage.
type Service struct {
	repo        ports.Repository
	notifier    ports.Notifier
	subscribers ports.SubscriberRepository
	subNotifier ports.SubscriberNotifier
	now         func() time.Time
}

// Option configures optional collaborators.
type Option func(*Service)

// WithNotifier wires the automation webhook fan-out.
func WithNotifier(notifier ports.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithSubscriberRepository enables newsletter signups.
func WithSubscriberRepository(repo ports.SubscriberRepository) Option {
	return func(s *Service) { s.subscribers = repo }
}

// WithSubscriberNotifier wires the newsletter webhook fan-out.
func WithSubscriberNotifier(notifier ports.SubscriberNotifier) Option {
	return func(s *Service) { s.subNotifier = notifier }
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the contact service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit validates and persists the submission, then forwards it to the
// automation webhook without blocking on delivery.
func (s *Service) Submit(ctx context.Context, name, email, subject, message string) (*domain.Contact, error) {
	contact, err := domain.NewContact(name, email, subject, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	contact.ID = uuid.NewString()
	contact.CreatedAt = s.now().UTC()
	saved, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		// Delivery failures must not fail the intake.
		go func(contact domain.Contact) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			_ = s.notifier.NotifyContactReceived(notifyCtx, &contact)
		}(*saved)
	}
	return saved, nil
}

// List returns submissions for admin triage, optionally filtered by status.
func (s *Service) List(ctx context.Context, status domain.Status) ([]*domain.Contact, error) {
	return s.repo.List(ctx, status)
}

// UpdateStatus moves a submission into a triage state.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Contact, error) {
	probe := domain.Contact{}
	if err := probe.SetStatus(status); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a submission.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Subscribe records a newsletter signup and forwards new subscribers to the
// automation webhook. Signing up an address twice is not an error.
func (s *Service) Subscribe(ctx context.Context, email string) (*domain.Subscriber, bool, error) {
	if s.subscribers == nil {
		return nil, false, errors.New("newsletter signups are not configured")
	}
	subscriber, err := domain.NewSubscriber(email)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	subscriber.ID = uuid.NewString()
	subscriber.SubscribedAt = s.now().UTC()
	saved, err := s.subscribers.Create(ctx, subscriber)
	if errors.Is(err, ports.ErrDuplicateSubscriber) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if s.subNotifier != nil {
		// Delivery failures must not fail the signup.
		go func(subscriber domain.Subscriber) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			_ = s.subNotifier.NotifySubscriberAdded(notifyCtx, &subscriber)
		}(*saved)
	}
	return saved, true, nil
}

// ListSubscribers returns the newsletter list for the admin surface.
func (s *Service) ListSubscribers(ctx context.Context) ([]*domain.Subscriber, error) {
	if s.subscribers == nil {
		return []*domain.Subscriber{}, nil
	}
	return s.subscribers.List(ctx)
}

var _ ports.Service = (*Service)(nil)
