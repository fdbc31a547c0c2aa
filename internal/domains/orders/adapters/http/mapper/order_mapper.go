package mapper

import (
	"encoding/json"
	"time"

	orderstypes "github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

// CreateOrderRequest is the transport-layer order draft.
type CreateOrderRequest struct {
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required"`
	Phone           string          `json:"phone"`
	Items           []LineItem      `json:"items" binding:"required"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
	BillingAddress  json.RawMessage `json:"billingAddress"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Tax             float64         `json:"tax"`
	Total           float64         `json:"total"`
	PaymentIntentID string          `json:"paymentIntentId"`
	PromoCode       string          `json:"promoCode"`
	IsDigital       bool            `json:"isDigital"`
}

// LineItem mirrors the client cart entry.
type LineItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is the transport representation of a persisted order.
type Order struct {
	ID                string          `json:"id"`
	Customer          Customer        `json:"customer"`
	Items             []LineItem      `json:"items"`
	ShippingAddress   json.RawMessage `json:"shippingAddress,omitempty"`
	BillingAddress    json.RawMessage `json:"billingAddress,omitempty"`
	Subtotal          float64         `json:"subtotal"`
	Shipping          float64         `json:"shipping"`
	Tax               float64         `json:"tax"`
	Total             float64         `json:"total"`
	PromoCode         string          `json:"promoCode,omitempty"`
	Discount          float64         `json:"discount,omitempty"`
	PaymentIntentID   string          `json:"paymentIntentId,omitempty"`
	PaymentMethod     string          `json:"paymentMethod"`
	Status            string          `json:"status"`
	IsDigital         bool            `json:"isDigital"`
	TrackingNumber    string          `json:"trackingNumber,omitempty"`
	Carrier           string          `json:"carrier,omitempty"`
	EstimatedDelivery string          `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	ShippedAt         *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt       *time.Time      `json:"deliveredAt,omitempty"`
	CancelledAt       *time.Time      `json:"cancelledAt,omitempty"`
}

// Customer is the transport buyer identity.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Tracking is the client-facing tracking view.
type Tracking struct {
	OrderID           string          `json:"orderId"`
	Status            string          `json:"status"`
	TrackingNumber    string          `json:"trackingNumber,omitempty"`
	Carrier           string          `json:"carrier,omitempty"`
	EstimatedDelivery string          `json:"estimatedDelivery,omitempty"`
	Timeline          []TimelineStage `json:"timeline"`
}

// TimelineStage is one step in the tracking view.
type TimelineStage struct {
	Status    string     `json:"status"`
	Date      *time.Time `json:"date"`
	Completed bool       `json:"completed"`
}

// ToCreateInput converts a transport draft into the application command.
func ToCreateInput(req CreateOrderRequest) orderstypes.CreateOrderInput {
	return orderstypes.CreateOrderInput{
		Customer: ordersdomain.Customer{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items:           toDomainItems(req.Items),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Subtotal:        req.Subtotal,
		Shipping:        req.Shipping,
		Tax:             req.Tax,
		Total:           req.Total,
		PaymentIntentID: req.PaymentIntentID,
		PromoCode:       req.PromoCode,
		IsDigital:       req.IsDigital,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID: order.ID,
		Customer: Customer{
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
		},
		Items:             fromDomainItems(order.Items),
		ShippingAddress:   order.ShippingAddress,
		BillingAddress:    order.BillingAddress,
		Subtotal:          order.Subtotal,
		Shipping:          order.Shipping,
		Tax:               order.Tax,
		Total:             order.Total,
		PromoCode:         order.PromoCode,
		Discount:          order.Discount,
		PaymentIntentID:   order.PaymentIntentID,
		PaymentMethod:     order.PaymentMethod,
		Status:            string(order.Status),
		IsDigital:         order.IsDigital,
		TrackingNumber:    order.TrackingNumber,
		Carrier:           order.Carrier,
		EstimatedDelivery: order.EstimatedDelivery,
		CreatedAt:         order.CreatedAt,
		PaidAt:            order.PaidAt,
		ShippedAt:         order.ShippedAt,
		DeliveredAt:       order.DeliveredAt,
		CancelledAt:       order.CancelledAt,
	}
}

// FromDomainOrderList converts a slice of domain orders.
func FromDomainOrderList(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

// FromTracking converts the application tracking projection.
func FromTracking(tracking *orderstypes.TrackingProjection) Tracking {
	if tracking == nil {
		return Tracking{}
	}
	stages := make([]TimelineStage, 0, len(tracking.Timeline))
	for _, stage := range tracking.Timeline {
		stages = append(stages, TimelineStage{Status: stage.Status, Date: stage.Date, Completed: stage.Completed})
	}
	return Tracking{
		OrderID:           tracking.OrderID,
		Status:            string(tracking.Status),
		TrackingNumber:    tracking.TrackingNumber,
		Carrier:           tracking.Carrier,
		EstimatedDelivery: tracking.EstimatedDelivery,
		Timeline:          stages,
	}
}

// ToDomainItem converts one transport cart entry.
func ToDomainItem(item LineItem) ordersdomain.LineItem {
	return ordersdomain.LineItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
	}
}

func toDomainItems(items []LineItem) []ordersdomain.LineItem {
	result := make([]ordersdomain.LineItem, 0, len(items))
	for _, item := range items {
		result = append(result, ToDomainItem(item))
	}
	return result
}

func fromDomainItems(items []ordersdomain.LineItem) []LineItem {
	result := make([]LineItem, 0, len(items))
	for _, item := range items {
		result = append(result, LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return result
}
