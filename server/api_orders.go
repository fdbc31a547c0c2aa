package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/storefront-api/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	promosports "github.com/Apurer/storefront-api/internal/domains/promos/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the orders bounded context service.
type OrdersAPI struct {
	service ordersports.Service
	promos  promosports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided services.
func NewOrdersAPI(service ordersports.Service, promos promosports.Service) OrdersAPI {
	return OrdersAPI{service: service, promos: promos}
}

// Get /health
func (api *OrdersAPI) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Post /api/orders
// Place a new order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders
// List the current user's orders
func (api *OrdersAPI) ListMyOrders(c *gin.Context) {
	identity := identityFrom(c)
	orders, err := api.service.ListOrders(c.Request.Context(), identity.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
}

// Get /api/orders/:orderId
// Fetch one order, owner or admin only
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("orderId"), identityFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders/:orderId/track
// Public tracking timeline
func (api *OrdersAPI) TrackOrder(c *gin.Context) {
	tracking, err := api.service.TrackOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromTracking(tracking))
}

// Get /api/guest/orders/:orderId?email=
// Guest lookup by order id plus matching email
func (api *OrdersAPI) GuestOrder(c *gin.Context) {
	order, err := api.service.GetGuestOrder(c.Request.Context(), c.Param("orderId"), c.Query("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// CreateIntentRequest is the payment-intent draft from the checkout client.
type CreateIntentRequest struct {
	Amount   float64                    `json:"amount" binding:"required"`
	Currency string                     `json:"currency"`
	Email    string                     `json:"email"`
	Items    []orderhttpmapper.LineItem `json:"items"`
}

// Post /api/orders/create-payment-intent
// Request a client-confirmable payment intent
func (api *OrdersAPI) CreatePaymentIntent(c *gin.Context) {
	var payload CreateIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := orderstypes.CreateIntentInput{
		Amount:        payload.Amount,
		Currency:      payload.Currency,
		CustomerEmail: payload.Email,
	}
	for _, item := range payload.Items {
		input.Items = append(input.Items, orderhttpmapper.ToDomainItem(item))
	}
	intent, err := api.service.CreatePaymentIntent(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": intent.IntentID,
		"clientSecret":    intent.ClientSecret,
	})
}

// ApplyPromoRequest asks for a discount quote against a subtotal.
type ApplyPromoRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal"`
}

// Post /api/orders/apply-promo
// Quote a promo code against the cart subtotal
func (api *OrdersAPI) ApplyPromo(c *gin.Context) {
	var payload ApplyPromoRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	quote, err := api.promos.Quote(c.Request.Context(), payload.Code, payload.Subtotal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":     quote.Code,
		"type":     string(quote.Type),
		"value":    quote.Value,
		"discount": quote.Discount,
		"subtotal": payload.Subtotal,
		"total":    payload.Subtotal - quote.Discount,
	})
}
