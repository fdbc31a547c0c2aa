package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-api/internal/domains/contact/adapters/memory"
	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

type fakeNotifier struct {
	mu       sync.Mutex
	received []*domain.Contact
	done     chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 1)}
}

func (f *fakeNotifier) NotifyContactReceived(_ context.Context, contact *domain.Contact) error {
	f.mu.Lock()
	f.received = append(f.received, contact)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func TestSubmit_PersistsAndNotifies(t *testing.T) {
	notifier := newFakeNotifier()
	svc := NewService(memory.NewRepository(), WithNotifier(notifier))

	contact, err := svc.Submit(context.Background(), "Alice", "alice@example.com", "Hello", "I have a question")
	require.NoError(t, err)
	require.NotEmpty(t, contact.ID)
	require.Equal(t, domain.StatusUnread, contact.Status)
	require.False(t, contact.CreatedAt.IsZero())

	select {
	case <-notifier.done:
	case <-time.After(time.Second):
		t.Fatal("notifier was not invoked")
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.received, 1)
	require.Equal(t, contact.ID, notifier.received[0].ID)
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Submit(context.Background(), "", "alice@example.com", "", "message")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Submit(context.Background(), "Alice", "no-at-sign", "", "message")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Submit(context.Background(), "Alice", "alice@example.com", "", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_FiltersAndOrdersNewestFirst(t *testing.T) {
	repo := memory.NewRepository()
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo, WithClock(func() time.Time {
		current = current.Add(time.Minute)
		return current
	}))

	first, err := svc.Submit(context.Background(), "Alice", "alice@example.com", "", "first")
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), "Bob", "bob@example.com", "", "second")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	_, err = svc.UpdateStatus(context.Background(), first.ID, domain.StatusRead)
	require.NoError(t, err)

	unread, err := svc.List(context.Background(), domain.StatusUnread)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, second.ID, unread[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(memory.NewRepository())
	contact, err := svc.Submit(context.Background(), "Alice", "alice@example.com", "", "message")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), contact.ID, domain.StatusReplied)
	require.NoError(t, err)
	require.Equal(t, domain.StatusReplied, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), contact.ID, domain.Status("archived"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), "missing", domain.StatusRead)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := NewService(memory.NewRepository())
	contact, err := svc.Submit(context.Background(), "Alice", "alice@example.com", "", "message")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), contact.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), contact.ID), ports.ErrNotFound)
}

type fakeSubscriberNotifier struct {
	mu       sync.Mutex
	received []*domain.Subscriber
	done     chan struct{}
}

func newFakeSubscriberNotifier() *fakeSubscriberNotifier {
	return &fakeSubscriberNotifier{done: make(chan struct{}, 1)}
}

func (f *fakeSubscriberNotifier) NotifySubscriberAdded(_ context.Context, subscriber *domain.Subscriber) error {
	f.mu.Lock()
	f.received = append(f.received, subscriber)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func TestSubscribe_PersistsAndNotifies(t *testing.T) {
	notifier := newFakeSubscriberNotifier()
	svc := NewService(memory.NewRepository(),
		WithSubscriberRepository(memory.NewSubscriberStore()),
		WithSubscriberNotifier(notifier))

	subscriber, created, err := svc.Subscribe(context.Background(), "Alice@Example.com")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "alice@example.com", subscriber.Email)
	require.NotEmpty(t, subscriber.ID)
	require.False(t, subscriber.SubscribedAt.IsZero())

	select {
	case <-notifier.done:
	case <-time.After(time.Second):
		t.Fatal("subscriber notifier was not invoked")
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.received, 1)
	require.Equal(t, subscriber.Email, notifier.received[0].Email)
}

func TestSubscribe_DuplicateIsAcknowledged(t *testing.T) {
	notifier := newFakeSubscriberNotifier()
	svc := NewService(memory.NewRepository(),
		WithSubscriberRepository(memory.NewSubscriberStore()),
		WithSubscriberNotifier(notifier))

	_, created, err := svc.Subscribe(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, created)
	<-notifier.done

	_, created, err = svc.Subscribe(context.Background(), "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	require.False(t, created)

	select {
	case <-notifier.done:
		t.Fatal("duplicate signup must not notify")
	case <-time.After(50 * time.Millisecond):
	}

	list, err := svc.ListSubscribers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSubscribe_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository(),
		WithSubscriberRepository(memory.NewSubscriberStore()))

	_, _, err := svc.Subscribe(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Subscribe(context.Background(), "no-at-sign")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubscribe_UnconfiguredStoreFails(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, _, err := svc.Subscribe(context.Background(), "alice@example.com")
	require.Error(t, err)

	list, err := svc.ListSubscribers(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
