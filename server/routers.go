// Package storefrontserver wires the storefront HTTP API on gin.
package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated API endpoints.
type Routes []Route

// ApiHandleFunctions bundles the per-context API handlers.
type ApiHandleFunctions struct {
	OrdersAPI   OrdersAPI
	PaymentsAPI PaymentsAPI
	AuthAPI     AuthAPI
	ContactAPI  ContactAPI
	AdminAPI    AdminAPI
	Auth        *AuthMiddleware
}

// NewRouter returns a new router with sensible defaults.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	auth := handleFunctions.Auth
	if auth == nil {
		auth = NewAuthMiddleware(nil)
	}
	router.Use(auth.Resolve())
	for _, route := range getRoutes(handleFunctions, auth) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is the fallback for unimplemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions, auth *AuthMiddleware) Routes {
	return Routes{
		{"Health", http.MethodGet, "/health", handleFunctions.OrdersAPI.Health},

		{"CreateOrder", http.MethodPost, "/api/orders", handleFunctions.OrdersAPI.CreateOrder},
		{"ListMyOrders", http.MethodGet, "/api/orders", auth.RequireSession(handleFunctions.OrdersAPI.ListMyOrders)},
		{"GetOrder", http.MethodGet, "/api/orders/:orderId", auth.RequireSession(handleFunctions.OrdersAPI.GetOrder)},
		{"TrackOrder", http.MethodGet, "/api/orders/:orderId/track", handleFunctions.OrdersAPI.TrackOrder},
		// Lives outside /api/orders because the :orderId wildcard would
		// otherwise collide with a literal segment in gin's route tree.
		{"GuestOrder", http.MethodGet, "/api/guest/orders/:orderId", handleFunctions.OrdersAPI.GuestOrder},
		{"CreatePaymentIntent", http.MethodPost, "/api/orders/create-payment-intent", handleFunctions.OrdersAPI.CreatePaymentIntent},
		{"ApplyPromo", http.MethodPost, "/api/orders/apply-promo", handleFunctions.OrdersAPI.ApplyPromo},

		{"StripeWebhook", http.MethodPost, "/api/webhooks/stripe", handleFunctions.PaymentsAPI.StripeWebhook},
		{"ContactWebhook", http.MethodPost, "/api/webhooks/contact", handleFunctions.ContactAPI.Submit},
		{"NewsletterWebhook", http.MethodPost, "/api/webhooks/newsletter", handleFunctions.ContactAPI.Subscribe},

		{"Login", http.MethodPost, "/api/auth/login", handleFunctions.AuthAPI.Login},
		{"Logout", http.MethodPost, "/api/auth/logout", handleFunctions.AuthAPI.Logout},
		{"Me", http.MethodGet, "/api/auth/me", auth.RequireSession(handleFunctions.AuthAPI.Me)},

		{"AdminListOrders", http.MethodGet, "/api/admin/orders", auth.RequireAdmin(handleFunctions.AdminAPI.ListOrders)},
		{"AdminUpdateOrderStatus", http.MethodPut, "/api/admin/orders/:orderId/status", auth.RequireAdmin(handleFunctions.AdminAPI.UpdateOrderStatus)},

		{"AdminListPromos", http.MethodGet, "/api/admin/promos", auth.RequireAdmin(handleFunctions.AdminAPI.ListPromos)},
		{"AdminCreatePromo", http.MethodPost, "/api/admin/promos", auth.RequireAdmin(handleFunctions.AdminAPI.CreatePromo)},
		{"AdminUpdatePromo", http.MethodPut, "/api/admin/promos/:promoId", auth.RequireAdmin(handleFunctions.AdminAPI.UpdatePromo)},
		{"AdminDeletePromo", http.MethodDelete, "/api/admin/promos/:promoId", auth.RequireAdmin(handleFunctions.AdminAPI.DeletePromo)},

		{"AdminListSubscribers", http.MethodGet, "/api/admin/subscribers", auth.RequireAdmin(handleFunctions.AdminAPI.ListSubscribers)},

		{"AdminListContacts", http.MethodGet, "/api/admin/contacts", auth.RequireAdmin(handleFunctions.AdminAPI.ListContacts)},
		{"AdminUpdateContact", http.MethodPut, "/api/admin/contacts/:contactId/status", auth.RequireAdmin(handleFunctions.AdminAPI.UpdateContactStatus)},
		{"AdminDeleteContact", http.MethodDelete, "/api/admin/contacts/:contactId", auth.RequireAdmin(handleFunctions.AdminAPI.DeleteContact)},
	}
}
