package storefrontserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	orderstypes "github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	userdomain "github.com/Apurer/storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/storefront-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

const sessionContextKey = "storefront.session"

// AuthMiddleware resolves bearer tokens into sessions and gates routes.
type AuthMiddleware struct {
	users userports.Service
}

// NewAuthMiddleware wires the middleware with the users service. A nil
// service leaves every request anonymous.
func NewAuthMiddleware(users userports.Service) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Resolve attaches the session for a valid bearer token and continues
// regardless. Route guards decide whether a session is required.
func (m *AuthMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" && m.users != nil {
			if session, err := m.users.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(sessionContextKey, session)
			}
		}
		c.Next()
	}
}

// RequireSession rejects anonymous requests with 401.
func (m *AuthMiddleware) RequireSession(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionFrom(c) == nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("valid session required"))
			c.Abort()
			return
		}
		next(c)
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func (m *AuthMiddleware) RequireAdmin(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFrom(c)
		if session == nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("valid session required"))
			c.Abort()
			return
		}
		if !session.IsAdmin {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("admin privilege required"))
			c.Abort()
			return
		}
		next(c)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func sessionFrom(c *gin.Context) *userdomain.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*userdomain.Session)
	if !ok {
		return nil
	}
	return session
}

func identityFrom(c *gin.Context) orderstypes.Identity {
	session := sessionFrom(c)
	if session == nil {
		return orderstypes.Identity{}
	}
	return orderstypes.Identity{Email: session.Email, IsAdmin: session.IsAdmin}
}
