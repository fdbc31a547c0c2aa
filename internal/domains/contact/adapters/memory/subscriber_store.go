package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

var _ ports.SubscriberRepository = (*SubscriberStore)(nil)

// SubscriberStore is an in-memory newsletter list keyed by email.
type SubscriberStore struct {
	mu          sync.RWMutex
	subscribers map[string]*domain.Subscriber
}

// NewSubscriberStore constructs an empty newsletter list.
func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{subscribers: map[string]*domain.Subscriber{}}
}

func (s *SubscriberStore) Create(_ context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	if subscriber == nil {
		return nil, errors.New("subscriber is nil")
	}
	clone := *subscriber
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.subscribers[clone.Email]; taken {
		return nil, ports.ErrDuplicateSubscriber
	}
	s.subscribers[clone.Email] = &clone
	stored := clone
	return &stored, nil
}

func (s *SubscriberStore) List(_ context.Context) ([]*domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Subscriber, 0, len(s.subscribers))
	for _, subscriber := range s.subscribers {
		clone := *subscriber
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].SubscribedAt.After(list[j].SubscribedAt)
	})
	return list, nil
}
