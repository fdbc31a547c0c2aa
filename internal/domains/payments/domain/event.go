// Package domain holds the payment event model reconciled against orders.
package domain

import (
	"errors"
	"strings"
)

// Event types the processor delivers that the storefront reacts to. Anything
// else is acknowledged and ignored.
const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

var ErrEmptyEventID = errors.New("payment event id is required")

// Event is a processor webhook event after signature verification.
type Event struct {
	ID              string
	Type            string
	PaymentIntentID string
}

// Validate enforces the minimum shape required for idempotent processing.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyEventID
	}
	return nil
}

// Actionable reports whether the event type drives an order mutation.
func (e *Event) Actionable() bool {
	return e.Type == EventIntentSucceeded || e.Type == EventIntentFailed
}
