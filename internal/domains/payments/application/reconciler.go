package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/storefront-api/internal/domains/payments/domain"
	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

// Reconciler turns processor webhook deliveries into order mutations with
// exactly-once apply semantics.
type Reconciler struct {
	verifier ports.EventVerifier
	store    ports.ProcessedEventStore
	orders   ports.OrderApplier
}

// NewReconciler wires the reconciler with its collaborators.
func NewReconciler(verifier ports.EventVerifier, store ports.ProcessedEventStore, orders ports.OrderApplier) *Reconciler {
	return &Reconciler{verifier: verifier, store: store, orders: orders}
}

// Reconcile verifies the payload, claims the event id, and applies the
// payment outcome to the matched order. The reservation is taken before the
// apply so a racing duplicate delivery cannot double-apply, and released when
// the apply fails so the sender's retry can land.
func (r *Reconciler) Reconcile(ctx context.Context, payload []byte, signatureHeader string) (*ports.ReconcileResult, error) {
	event, err := r.verifier.Verify(payload, signatureHeader)
	if err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidSignature, err)
	}

	result := &ports.ReconcileResult{EventID: event.ID, EventType: event.Type}
	if !event.Actionable() {
		result.Outcome = ports.OutcomeIgnored
		return result, nil
	}
	if event.PaymentIntentID == "" {
		result.Outcome = ports.OutcomeUnmatched
		return result, nil
	}

	reserved, err := r.store.Reserve(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("reserve event %s: %w", event.ID, err)
	}
	if !reserved {
		result.Outcome = ports.OutcomeDuplicate
		return result, nil
	}

	orderID, err := r.apply(ctx, event)
	if err != nil {
		if releaseErr := r.store.Release(ctx, event.ID); releaseErr != nil {
			return nil, errors.Join(err, fmt.Errorf("release event %s: %w", event.ID, releaseErr))
		}
		if errors.Is(err, ports.ErrNoMatchingOrder) {
			result.Outcome = ports.OutcomeUnmatched
			return result, nil
		}
		return nil, err
	}
	result.OrderID = orderID
	result.Outcome = ports.OutcomeApplied
	return result, nil
}

func (r *Reconciler) apply(ctx context.Context, event *domain.Event) (string, error) {
	switch event.Type {
	case domain.EventIntentSucceeded:
		return r.orders.ConfirmByIntent(ctx, event.PaymentIntentID)
	case domain.EventIntentFailed:
		return r.orders.FailByIntent(ctx, event.PaymentIntentID)
	default:
		return "", fmt.Errorf("unexpected event type %q", event.Type)
	}
}

var _ ports.Reconciler = (*Reconciler)(nil)
