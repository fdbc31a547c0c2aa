package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactports "github.com/Apurer/storefront-api/internal/domains/contact/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// ContactAPI wires HTTP transport with the contact bounded context service.
type ContactAPI struct {
	service contactports.Service
}

// NewContactAPI creates a ContactAPI backed by the provided service.
func NewContactAPI(service contactports.Service) ContactAPI {
	return ContactAPI{service: service}
}

// ContactRequest is the storefront contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Post /api/webhooks/contact
// Accept a contact-form submission
func (api *ContactAPI) Submit(c *gin.Context) {
	var payload ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	contact, err := api.service.Submit(c.Request.Context(), payload.Name, payload.Email, payload.Subject, payload.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":     contact.ID,
		"status": string(contact.Status),
	})
}

// SubscribeRequest is the newsletter signup payload.
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Post /api/webhooks/newsletter
// Accept a newsletter signup; repeated signups are acknowledged, not errors
func (api *ContactAPI) Subscribe(c *gin.Context) {
	var payload SubscribeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	_, created, err := api.service.Subscribe(c.Request.Context(), payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already subscribed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
}
