package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo       ports.Repository
	gateway    ports.PaymentGateway
	promos     ports.PromoQuoter
	dispatcher ports.NotificationDispatcher
}

// Option configures optional collaborators.
type Option func(*Service)

// WithPaymentGateway wires the external payment processor adapter.
func WithPaymentGateway(gateway ports.PaymentGateway) Option {
	return func(s *Service) { s.gateway = gateway }
}

// WithPromoQuoter wires the promo pricing collaborator.
func WithPromoQuoter(promos ports.PromoQuoter) Option {
	return func(s *Service) { s.promos = promos }
}

// WithNotificationDispatcher wires the automation fan-out.
func WithNotificationDispatcher(dispatcher ports.NotificationDispatcher) Option {
	return func(s *Service) { s.dispatcher = dispatcher }
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the draft, optionally applies a promo, persists the
// order, and hands the notification off without blocking on it.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(input.Customer, input.Items, input.Subtotal, input.Shipping, input.Tax, input.Total)
	if err != nil {
		return nil, mapError(err)
	}
	order.ShippingAddress = input.ShippingAddress
	order.BillingAddress = input.BillingAddress
	order.PaymentIntentID = strings.TrimSpace(input.PaymentIntentID)
	order.PaymentMethod = "card"
	order.IsDigital = input.IsDigital

	if code := strings.TrimSpace(input.PromoCode); code != "" {
		if s.promos == nil {
			return nil, errors.New("promo engine not configured")
		}
		quote, err := s.promos.Quote(ctx, code, order.Subtotal)
		if err != nil {
			return nil, err
		}
		if err := order.ApplyPromo(quote.Code, quote.Discount); err != nil {
			return nil, mapError(err)
		}
	}

	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	if saved.PromoCode != "" && s.promos != nil {
		// Usage counting is part of creation, not quoting; a failed increment
		// must not undo the persisted order.
		_ = s.promos.RecordUse(ctx, saved.PromoCode)
	}
	if s.dispatcher != nil {
		s.dispatcher.DispatchOrderPlaced(ctx, saved)
	}
	return saved, nil
}

// GetOrder returns the order when the requester owns it or holds admin
// privilege.
func (s *Service) GetOrder(ctx context.Context, id string, requester types.Identity) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin && !strings.EqualFold(order.Customer.Email, requester.Email) {
		return nil, ErrForbidden
	}
	return order, nil
}

// TrackOrder derives the client-facing timeline from status and timestamps.
func (s *Service) TrackOrder(ctx context.Context, id string) (*types.TrackingProjection, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildTracking(order), nil
}

// GetGuestOrder matches the supplied email against the stored customer email
// case-insensitively. Mismatches get the same generic rejection regardless
// of whether the order exists for another customer.
func (s *Service) GetGuestOrder(ctx context.Context, id, email string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(email) == "" || !strings.EqualFold(order.Customer.Email, email) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListOrders returns the orders belonging to the customer email.
func (s *Service) ListOrders(ctx context.Context, email string) ([]*domain.Order, error) {
	return s.repo.ListByCustomerEmail(ctx, email)
}

// ListAllOrders exposes the full order book for admin views, optionally
// filtered by status.
func (s *Service) ListAllOrders(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return s.repo.List(ctx, status)
}

// UpdateStatus applies an admin status transition.
func (s *Service) UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error) {
	extra := domain.StatusExtra{
		TrackingNumber:    input.TrackingNumber,
		Carrier:           input.Carrier,
		EstimatedDelivery: input.EstimatedDelivery,
	}
	order, err := s.repo.UpdateStatus(ctx, input.OrderID, input.Status, extra)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ConfirmPayment stamps the processor's success on the matched order.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.ConfirmPayment(ctx, orderID)
}

// CreatePaymentIntent requests an intent from the external processor. The
// call is never retried here; duplicate intents mean duplicate charges.
func (s *Service) CreatePaymentIntent(ctx context.Context, input types.CreateIntentInput) (*types.PaymentIntent, error) {
	if s.gateway == nil {
		return nil, errors.New("payment gateway not configured")
	}
	if input.Amount <= 0 {
		return nil, mapError(domain.ErrNegativeAmount)
	}
	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "usd"
	}
	metadata := map[string]string{}
	if input.CustomerEmail != "" {
		metadata["customer_email"] = input.CustomerEmail
	}
	if len(input.Items) > 0 {
		if encoded, err := json.Marshal(input.Items); err == nil {
			metadata["order_items"] = string(encoded)
		}
	}
	result, err := s.gateway.CreateIntent(ctx, input.Amount, currency, metadata)
	if err != nil {
		return nil, err
	}
	return &types.PaymentIntent{IntentID: result.IntentID, ClientSecret: result.ClientSecret}, nil
}

var _ ports.Service = (*Service)(nil)

func buildTracking(order *domain.Order) *types.TrackingProjection {
	created := order.CreatedAt
	processing := order.Status == domain.StatusProcessing ||
		order.Status == domain.StatusShipped ||
		order.Status == domain.StatusDelivered
	shipped := order.Status == domain.StatusShipped || order.Status == domain.StatusDelivered
	delivered := order.Status == domain.StatusDelivered

	return &types.TrackingProjection{
		OrderID:           order.ID,
		Status:            order.Status,
		TrackingNumber:    order.TrackingNumber,
		Carrier:           order.Carrier,
		EstimatedDelivery: order.EstimatedDelivery,
		Timeline: []types.TimelineStage{
			{Status: "Order Placed", Date: &created, Completed: true},
			{Status: "Processing", Date: &created, Completed: processing},
			{Status: "Shipped", Date: order.ShippedAt, Completed: shipped},
			{Status: "Delivered", Date: order.DeliveredAt, Completed: delivered},
		},
	}
}
