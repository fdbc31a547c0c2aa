package ports

import "context"

// Outcome classifies what the reconciler did with a delivery.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeUnmatched Outcome = "unmatched"
)

// ReconcileResult describes the handling of one webhook delivery.
type ReconcileResult struct {
	EventID   string
	EventType string
	OrderID   string
	Outcome   Outcome
}

// Reconciler applies processor webhook deliveries to the order book.
type Reconciler interface {
	// Reconcile verifies, deduplicates, and applies one delivery. It returns
	// ErrInvalidSignature for forged payloads and an error only for
	// infrastructure failures the sender should retry; business non-matches
	// come back as a non-applied result with a nil error.
	Reconcile(ctx context.Context, payload []byte, signatureHeader string) (*ReconcileResult, error)
}
