//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/storefront-api/test/pact"

	ordersmemory "github.com/Apurer/storefront-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/storefront-api/internal/domains/orders/adapters/observability"
	orderspromos "github.com/Apurer/storefront-api/internal/domains/orders/adapters/promos"
	ordersapp "github.com/Apurer/storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"

	contactmemory "github.com/Apurer/storefront-api/internal/domains/contact/adapters/memory"
	contactapp "github.com/Apurer/storefront-api/internal/domains/contact/application"
	paymentsmemory "github.com/Apurer/storefront-api/internal/domains/payments/adapters/memory"
	paymentsobs "github.com/Apurer/storefront-api/internal/domains/payments/adapters/observability"
	paymentsorders "github.com/Apurer/storefront-api/internal/domains/payments/adapters/orders"
	paymentsstripe "github.com/Apurer/storefront-api/internal/domains/payments/adapters/stripe"
	paymentsapp "github.com/Apurer/storefront-api/internal/domains/payments/application"
	promosmemory "github.com/Apurer/storefront-api/internal/domains/promos/adapters/memory"
	promosapp "github.com/Apurer/storefront-api/internal/domains/promos/application"
	usermemory "github.com/Apurer/storefront-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/storefront-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/storefront-api/internal/domains/users/application"
	storefrontserver "github.com/Apurer/storefront-api/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()

	// Memory stores start empty and the promo repository ships its launch
	// seeds, so every declared state already holds when the app boots.
	noSetup := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		return nil, nil
	}
	stateHandlers := models.StateHandlers{
		pacttest.StateCheckoutBaseline: noSetup,
		pacttest.StatePromosSeeded:     noSetup,
		pacttest.StateOrderMissing:     noSetup,
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	orderRepo := ordersmemory.NewRepository(ordersdomain.TransitionPolicy{})
	promoService := promosapp.NewService(promosmemory.NewSeededRepository())
	orderService := ordersobs.New(ordersapp.NewService(orderRepo,
		ordersapp.WithPromoQuoter(orderspromos.NewQuoter(promoService)),
	))

	userService := userobs.New(userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore()))
	contactService := contactapp.NewService(contactmemory.NewRepository(),
		contactapp.WithSubscriberRepository(contactmemory.NewSubscriberStore()))

	reconciler := paymentsobs.New(paymentsapp.NewReconciler(
		paymentsstripe.NewVerifier("", true),
		paymentsmemory.NewEventStore(),
		paymentsorders.NewApplier(orderRepo),
	))

	handlers := storefrontserver.ApiHandleFunctions{
		OrdersAPI:   storefrontserver.NewOrdersAPI(orderService, promoService),
		PaymentsAPI: storefrontserver.NewPaymentsAPI(reconciler),
		AuthAPI:     storefrontserver.NewAuthAPI(userService),
		ContactAPI:  storefrontserver.NewContactAPI(contactService),
		AdminAPI:    storefrontserver.NewAdminAPI(orderService, promoService, contactService),
		Auth:        storefrontserver.NewAuthMiddleware(userService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{server: server}
}
