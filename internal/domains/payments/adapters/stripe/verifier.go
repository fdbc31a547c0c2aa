package stripe

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/Apurer/storefront-api/internal/domains/payments/domain"
	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

var _ ports.EventVerifier = (*Verifier)(nil)

// Verifier authenticates Stripe webhook payloads against the endpoint secret.
// With an empty secret it can run permissively for local development, parsing
// payloads without verification; production wiring must always set a secret.
type Verifier struct {
	secret     string
	permissive bool
}

// NewVerifier builds a verifier for the webhook endpoint secret.
func NewVerifier(secret string, permissive bool) *Verifier {
	return &Verifier{secret: secret, permissive: permissive}
}

// Verify checks the Stripe-Signature header and decodes the event.
func (v *Verifier) Verify(payload []byte, signatureHeader string) (*domain.Event, error) {
	if v.secret == "" {
		if !v.permissive {
			return nil, fmt.Errorf("%w: webhook secret not configured", ports.ErrInvalidSignature)
		}
		return parseUnverified(payload)
	}
	event, err := webhook.ConstructEvent(payload, signatureHeader, v.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidSignature, err)
	}
	decoded := &domain.Event{ID: event.ID, Type: string(event.Type)}
	decoded.PaymentIntentID = intentIDFrom(event.Data.Raw)
	return decoded, nil
}

func parseUnverified(payload []byte) (*domain.Event, error) {
	var envelope struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidSignature, err)
	}
	return &domain.Event{
		ID:              envelope.ID,
		Type:            envelope.Type,
		PaymentIntentID: intentIDFrom(envelope.Data.Object),
	}, nil
}

func intentIDFrom(object json.RawMessage) string {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(object, &payload); err != nil {
		return ""
	}
	return payload.ID
}
