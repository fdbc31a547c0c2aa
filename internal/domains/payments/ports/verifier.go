package ports

import (
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/payments/domain"
)

// ErrInvalidSignature rejects payloads that fail webhook authentication.
// Handlers translate it to 400 so the sender does not retry forged payloads.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// EventVerifier authenticates a raw webhook payload and decodes the event.
type EventVerifier interface {
	Verify(payload []byte, signatureHeader string) (*domain.Event, error)
}
