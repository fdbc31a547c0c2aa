package types

import (
	"encoding/json"
	"time"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

// CreateOrderInput is the order draft accepted from clients. Totals are
// client-advisory in the current design; they are validated for sanity but
// not recomputed server-side.
type CreateOrderInput struct {
	Customer        domain.Customer
	Items           []domain.LineItem
	ShippingAddress json.RawMessage
	BillingAddress  json.RawMessage
	Subtotal        float64
	Shipping        float64
	Tax             float64
	Total           float64
	PaymentIntentID string
	PromoCode       string
	IsDigital       bool
}

// Identity carries the authenticated requester for ownership checks.
type Identity struct {
	Email   string
	IsAdmin bool
}

// UpdateStatusInput is the admin-facing status transition command.
type UpdateStatusInput struct {
	OrderID           string
	Status            domain.Status
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery string
}

// CreateIntentInput requests a payment intent from the external processor.
type CreateIntentInput struct {
	Amount        float64
	Currency      string
	CustomerEmail string
	Items         []domain.LineItem
}

// PaymentIntent is the client-facing result of intent creation.
type PaymentIntent struct {
	IntentID     string
	ClientSecret string
}

// TimelineStage is one client-facing tracking step.
type TimelineStage struct {
	Status    string
	Date      *time.Time
	Completed bool
}

// TrackingProjection is derived purely from the order's status and stage
// timestamps; it holds no independent state.
type TrackingProjection struct {
	OrderID           string
	Status            domain.Status
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery string
	Timeline          []TimelineStage
}
