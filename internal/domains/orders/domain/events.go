package domain

import "time"

// Event is the base interface for order lifecycle events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised when a new order is persisted.
type OrderPlaced struct {
	BaseEvent
	OrderID       string
	CustomerEmail string
	Total         float64
	IsDigital     bool
}

// EventName returns the event type identifier.
func (e OrderPlaced) EventName() string {
	return "orders.order.placed"
}

// OrderStatusChanged is raised on every accepted status transition.
type OrderStatusChanged struct {
	BaseEvent
	OrderID    string
	FromStatus Status
	ToStatus   Status
}

// EventName returns the event type identifier.
func (e OrderStatusChanged) EventName() string {
	return "orders.order.status_changed"
}

// OrderPaymentConfirmed is raised when the payment processor reports success.
type OrderPaymentConfirmed struct {
	BaseEvent
	OrderID         string
	PaymentIntentID string
}

// EventName returns the event type identifier.
func (e OrderPaymentConfirmed) EventName() string {
	return "orders.order.payment_confirmed"
}
