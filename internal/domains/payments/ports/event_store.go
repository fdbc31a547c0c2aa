package ports

import "context"

// ProcessedEventStore records which webhook events have already been applied.
// Reserve must be atomic: exactly one concurrent caller wins for an event id.
type ProcessedEventStore interface {
	// Reserve claims the event id. It returns false when the id was already
	// claimed, which callers treat as a duplicate delivery.
	Reserve(ctx context.Context, eventID string) (bool, error)
	// Release frees a reservation after a failed apply so the sender's retry
	// can be processed.
	Release(ctx context.Context, eventID string) error
}
