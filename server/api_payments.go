package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentsports "github.com/Apurer/storefront-api/internal/domains/payments/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// PaymentsAPI exposes the processor webhook endpoint.
type PaymentsAPI struct {
	reconciler paymentsports.Reconciler
}

// NewPaymentsAPI creates a PaymentsAPI backed by the reconciler.
func NewPaymentsAPI(reconciler paymentsports.Reconciler) PaymentsAPI {
	return PaymentsAPI{reconciler: reconciler}
}

// Post /api/webhooks/stripe
// Reconcile a processor event against the order book. Authenticated and
// parseable deliveries are always acknowledged; only infrastructure failures
// return 5xx so the sender retries.
func (api *PaymentsAPI) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("unreadable payload"))
		return
	}
	result, err := api.reconciler.Reconcile(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, paymentsports.ErrInvalidSignature) {
			respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid signature"))
			return
		}
		respondProblem(c, apierrors.ErrInternal.WithDetail("event processing failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"outcome":  string(result.Outcome),
	})
}
