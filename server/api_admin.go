package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contacthttpmapper "github.com/Apurer/storefront-api/internal/domains/contact/adapters/http/mapper"
	contactdomain "github.com/Apurer/storefront-api/internal/domains/contact/domain"
	contactports "github.com/Apurer/storefront-api/internal/domains/contact/ports"
	orderhttpmapper "github.com/Apurer/storefront-api/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	promohttpmapper "github.com/Apurer/storefront-api/internal/domains/promos/adapters/http/mapper"
	promosports "github.com/Apurer/storefront-api/internal/domains/promos/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// AdminAPI bundles the back-office order, promo, and contact operations.
type AdminAPI struct {
	orders   ordersports.Service
	promos   promosports.Service
	contacts contactports.Service
}

// NewAdminAPI creates an AdminAPI backed by the provided services.
func NewAdminAPI(orders ordersports.Service, promos promosports.Service, contacts contactports.Service) AdminAPI {
	return AdminAPI{orders: orders, promos: promos, contacts: contacts}
}

// Get /api/admin/orders?status=
// List the full order book, optionally filtered by status
func (api *AdminAPI) ListOrders(c *gin.Context) {
	orders, err := api.orders.ListAllOrders(c.Request.Context(), ordersdomain.Status(c.Query("status")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
}

// UpdateStatusRequest is the admin status transition payload.
type UpdateStatusRequest struct {
	Status            string `json:"status" binding:"required"`
	TrackingNumber    string `json:"trackingNumber"`
	Carrier           string `json:"carrier"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

// Put /api/admin/orders/:orderId/status
// Apply a fulfillment transition
func (api *AdminAPI) UpdateOrderStatus(c *gin.Context) {
	var payload UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := orderstypes.UpdateStatusInput{
		OrderID:           c.Param("orderId"),
		Status:            ordersdomain.Status(payload.Status),
		TrackingNumber:    payload.TrackingNumber,
		Carrier:           payload.Carrier,
		EstimatedDelivery: payload.EstimatedDelivery,
	}
	order, err := api.orders.UpdateStatus(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/admin/promos
func (api *AdminAPI) ListPromos(c *gin.Context) {
	promos, err := api.promos.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, promohttpmapper.FromDomainPromoList(promos))
}

// Post /api/admin/promos
func (api *AdminAPI) CreatePromo(c *gin.Context) {
	var payload promohttpmapper.PromoRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	promo, err := api.promos.Create(c.Request.Context(), promohttpmapper.ToDomainPromo(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, promohttpmapper.FromDomainPromo(promo))
}

// Put /api/admin/promos/:promoId
func (api *AdminAPI) UpdatePromo(c *gin.Context) {
	var payload promohttpmapper.PromoRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	promo, err := api.promos.Update(c.Request.Context(), c.Param("promoId"), promohttpmapper.ToDomainPromo(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, promohttpmapper.FromDomainPromo(promo))
}

// Delete /api/admin/promos/:promoId
func (api *AdminAPI) DeletePromo(c *gin.Context) {
	if err := api.promos.Delete(c.Request.Context(), c.Param("promoId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/admin/contacts?status=
func (api *AdminAPI) ListContacts(c *gin.Context) {
	contacts, err := api.contacts.List(c.Request.Context(), contactdomain.Status(c.Query("status")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacthttpmapper.FromDomainContactList(contacts))
}

// Get /api/admin/subscribers
func (api *AdminAPI) ListSubscribers(c *gin.Context) {
	subscribers, err := api.contacts.ListSubscribers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacthttpmapper.FromDomainSubscriberList(subscribers))
}

// ContactStatusRequest is the triage payload.
type ContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Put /api/admin/contacts/:contactId/status
func (api *AdminAPI) UpdateContactStatus(c *gin.Context) {
	var payload ContactStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	contact, err := api.contacts.UpdateStatus(c.Request.Context(), c.Param("contactId"), contactdomain.Status(payload.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacthttpmapper.FromDomainContact(contact))
}

// Delete /api/admin/contacts/:contactId
func (api *AdminAPI) DeleteContact(c *gin.Context) {
	if err := api.contacts.Delete(c.Request.Context(), c.Param("contactId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
