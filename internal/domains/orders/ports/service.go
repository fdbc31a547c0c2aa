package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string, requester types.Identity) (*domain.Order, error)
	TrackOrder(ctx context.Context, id string) (*types.TrackingProjection, error)
	GetGuestOrder(ctx context.Context, id, email string) (*domain.Order, error)
	ListOrders(ctx context.Context, email string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, orderID string) (*domain.Order, error)
	CreatePaymentIntent(ctx context.Context, input types.CreateIntentInput) (*types.PaymentIntent, error)
}
