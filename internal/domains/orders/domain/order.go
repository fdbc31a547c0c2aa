package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusProcessing    Status = "processing"
	StatusShipped       Status = "shipped"
	StatusDelivered     Status = "delivered"
	StatusCancelled     Status = "cancelled"
	StatusPaymentFailed Status = "payment_failed"
)

var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrInvalidEmail      = errors.New("customer email must contain '@'")
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrNegativeAmount    = errors.New("monetary amounts must not be negative")
	ErrInvalidStatus     = errors.New("order status is unknown")
	ErrInvalidTransition = errors.New("illegal order status transition")
)

// TransitionPolicy tunes which edges of the status graph are open.
type TransitionPolicy struct {
	// PaymentFailedRetryable opens payment_failed -> processing so a failed
	// charge can be retried instead of ending the order.
	PaymentFailedRetryable bool
}

// Customer identifies the buyer. Email doubles as the correlation key for
// guest lookup and owner checks.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// LineItem is opaque to the order lifecycle beyond its monetary contribution.
type LineItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// StatusExtra carries fulfillment fields merged in on specific transitions.
type StatusExtra struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery string
}

// Order models the storefront purchase aggregate.
type Order struct {
	ID              string
	Customer        Customer
	Items           []LineItem
	ShippingAddress json.RawMessage
	BillingAddress  json.RawMessage

	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64

	PromoCode string
	Discount  float64

	PaymentIntentID string
	PaymentMethod   string
	Status          Status
	IsDigital       bool

	TrackingNumber    string
	Carrier           string
	EstimatedDelivery string

	CreatedAt   time.Time
	PaidAt      *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	// Version increments on every mutation; repositories use it to detect
	// lost updates between racing writers.
	Version int64
}

// NewOrder validates a draft and normalizes it into a pending aggregate.
// The identifier and creation timestamp are assigned by the repository.
func NewOrder(customer Customer, items []LineItem, subtotal, shipping, tax, total float64) (*Order, error) {
	order := &Order{
		Customer: customer,
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
		Status:   StatusProcessing,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.Customer.Name) == "" {
		return ErrEmptyCustomerName
	}
	if !strings.Contains(o.Customer.Email, "@") {
		return ErrInvalidEmail
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, amount := range []float64{o.Subtotal, o.Shipping, o.Tax, o.Total, o.Discount} {
		if amount < 0 || math.IsNaN(amount) {
			return ErrNegativeAmount
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// TransitionTo applies the status state machine. Illegal moves are rejected
// with ErrInvalidTransition; legal ones stamp the stage timestamp and merge
// the transition extras.
func (o *Order) TransitionTo(next Status, extra StatusExtra, policy TransitionPolicy, now time.Time) error {
	if !isValidStatus(next) {
		return ErrInvalidStatus
	}
	if !canTransition(o.Status, next, policy) {
		return ErrInvalidTransition
	}
	o.Status = next
	switch next {
	case StatusShipped:
		at := now
		o.ShippedAt = &at
		if extra.TrackingNumber != "" {
			o.TrackingNumber = extra.TrackingNumber
		}
		if extra.Carrier != "" {
			o.Carrier = extra.Carrier
		}
		if extra.EstimatedDelivery != "" {
			o.EstimatedDelivery = extra.EstimatedDelivery
		}
	case StatusDelivered:
		at := now
		o.DeliveredAt = &at
	case StatusCancelled:
		at := now
		o.CancelledAt = &at
	}
	o.Version++
	return nil
}

// ConfirmPayment records the processor's success event. The order stays in
// processing; fulfillment moves it forward.
func (o *Order) ConfirmPayment(now time.Time) {
	if o.PaidAt == nil {
		at := now
		o.PaidAt = &at
		o.Version++
	}
}

// ApplyPromo stamps the discount agreed at creation time.
func (o *Order) ApplyPromo(code string, discount float64) error {
	if discount < 0 || discount > o.Subtotal {
		return ErrNegativeAmount
	}
	o.PromoCode = strings.ToUpper(strings.TrimSpace(code))
	o.Discount = discount
	return nil
}

func canTransition(from, to Status, policy TransitionPolicy) bool {
	switch from {
	case StatusProcessing:
		return to == StatusShipped || to == StatusCancelled || to == StatusPaymentFailed
	case StatusShipped:
		return to == StatusDelivered
	case StatusPaymentFailed:
		return policy.PaymentFailedRetryable && to == StatusProcessing
	default:
		// delivered and cancelled are terminal
		return false
	}
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusPaymentFailed:
		return true
	default:
		return false
	}
}
