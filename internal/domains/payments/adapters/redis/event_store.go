// Package redis backs webhook idempotency with a shared Redis keyspace so
// multiple API replicas deduplicate deliveries consistently.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

var _ ports.ProcessedEventStore = (*EventStore)(nil)

// DefaultTTL bounds how long a processed event id is remembered. Processors
// stop retrying deliveries well before this window closes.
const DefaultTTL = 72 * time.Hour

const keyPrefix = "payments:webhook-event:"

// EventStore records processed event ids with SET NX semantics.
type EventStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEventStore wires the store. A zero ttl falls back to DefaultTTL.
func NewEventStore(client *redis.Client, ttl time.Duration) *EventStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &EventStore{client: client, ttl: ttl}
}

func (s *EventStore) Reserve(ctx context.Context, eventID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+eventID, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve webhook event: %w", err)
	}
	return ok, nil
}

func (s *EventStore) Release(ctx context.Context, eventID string) error {
	if err := s.client.Del(ctx, keyPrefix+eventID).Err(); err != nil {
		return fmt.Errorf("release webhook event: %w", err)
	}
	return nil
}
