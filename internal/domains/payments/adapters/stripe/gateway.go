// Package stripe adapts the Stripe API to the payment ports.
package stripe

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	stripeapi "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

var _ ports.PaymentGateway = (*Gateway)(nil)

// DefaultTimeout bounds a single Stripe API call.
const DefaultTimeout = 5 * time.Second

// Gateway creates payment intents via the Stripe API. Network retries are
// disabled: a retried intent creation can double-charge.
type Gateway struct {
	api *client.API
}

// NewGateway builds a Stripe-backed gateway from the secret API key.
func NewGateway(secretKey string) *Gateway {
	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, &stripeapi.BackendConfig{
		HTTPClient:        &http.Client{Timeout: DefaultTimeout},
		MaxNetworkRetries: stripeapi.Int64(0),
	})
	api := &client.API{}
	api.Init(secretKey, &stripeapi.Backends{API: backend, Connect: backend, Uploads: backend})
	return &Gateway{api: api}
}

// CreateIntent creates a client-confirmable payment intent. Amount arrives in
// major units and is converted to the minor unit Stripe expects.
func (g *Gateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*ports.PaymentIntentResult, error) {
	params := &stripeapi.PaymentIntentParams{
		Params:   stripeapi.Params{Context: ctx},
		Amount:   stripeapi.Int64(int64(math.Round(amount * 100))),
		Currency: stripeapi.String(currency),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		},
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}
	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrGateway, err)
	}
	return &ports.PaymentIntentResult{IntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
