package ports

import (
	"context"
	"errors"
)

// ErrGateway wraps failures of the external payment processor. Callers must
// not retry intent creation automatically; a retry risks a duplicate charge.
var ErrGateway = errors.New("payment gateway error")

// PaymentIntentResult carries the processor's references for a new intent.
type PaymentIntentResult struct {
	IntentID     string
	ClientSecret string
}

// PaymentGateway creates client-confirmable payment intents with an external
// processor. Amounts are in major units of a 2-decimal currency.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntentResult, error)
}
