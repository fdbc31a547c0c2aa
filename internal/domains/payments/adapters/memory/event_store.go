package memory

import (
	"context"
	"sync"

	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

var _ ports.ProcessedEventStore = (*EventStore)(nil)

// EventStore tracks processed webhook event ids in process memory.
type EventStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewEventStore constructs an empty store.
func NewEventStore() *EventStore {
	return &EventStore{seen: map[string]struct{}{}}
}

func (s *EventStore) Reserve(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[eventID]; ok {
		return false, nil
	}
	s.seen[eventID] = struct{}{}
	return true, nil
}

func (s *EventStore) Release(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, eventID)
	return nil
}
