package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	contactapp "github.com/Apurer/storefront-api/internal/domains/contact/application"
	contactports "github.com/Apurer/storefront-api/internal/domains/contact/ports"
	ordersapp "github.com/Apurer/storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	promosapp "github.com/Apurer/storefront-api/internal/domains/promos/application"
	promosdomain "github.com/Apurer/storefront-api/internal/domains/promos/domain"
	promosports "github.com/Apurer/storefront-api/internal/domains/promos/ports"
	userapp "github.com/Apurer/storefront-api/internal/domains/users/application"
	userports "github.com/Apurer/storefront-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondServiceError translates application and domain errors into RFC 7807
// responses. Gateway failures deliberately hide the upstream detail.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound),
		errors.Is(err, promosports.ErrNotFound),
		errors.Is(err, contactports.ErrNotFound),
		errors.Is(err, userports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrForbidden):
		respondProblem(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	case errors.Is(err, userapp.ErrAuthentication):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid email or password"))
	case errors.Is(err, ordersdomain.ErrInvalidTransition):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrDuplicateIntent),
		errors.Is(err, promosports.ErrDuplicateCode):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrGateway):
		respondProblem(c, apierrors.ErrBadGateway.WithDetail("payment processor unavailable"))
	case isPromoRejection(err):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, promosapp.ErrInvalidInput),
		errors.Is(err, contactapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	default:
		// Unknown failures stay generic; the decorator layer logged the detail.
		respondProblem(c, apierrors.ErrInternal.WithDetail("unexpected error"))
	}
}

func isPromoRejection(err error) bool {
	return errors.Is(err, promosdomain.ErrInvalidCode) ||
		errors.Is(err, promosdomain.ErrInactive) ||
		errors.Is(err, promosdomain.ErrExhausted) ||
		errors.Is(err, promosdomain.ErrExpired) ||
		errors.Is(err, promosdomain.ErrBelowMinimum)
}
