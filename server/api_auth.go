package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/storefront-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/storefront-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// AuthAPI wires HTTP transport with the users bounded context service.
type AuthAPI struct {
	service userports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth/login
// Exchange credentials for an opaque session token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	user, err := api.service.GetByEmail(c.Request.Context(), session.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromSession(session, user))
}

// Post /api/auth/logout
// Invalidate the presented session token
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedOut": true})
}

// Get /api/auth/me
// Return the account behind the session
func (api *AuthAPI) Me(c *gin.Context) {
	session := sessionFrom(c)
	user, err := api.service.GetByEmail(c.Request.Context(), session.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}
