//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/storefront-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderView struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

type promoQuoteView struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	Discount float64 `json:"discount"`
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontWebContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	draft := pacttest.ExampleOrderDraft()
	orderBodyMatcher := matchers.Map{
		"id":     matchers.Regex("ORD-1A2B3C4D", "ORD-[A-Z0-9]{8}"),
		"status": matchers.Term("processing", "processing|shipped|delivered|cancelled|payment_failed"),
		"total":  matchers.Like(30.0),
		"customer": matchers.Map{
			"name":  matchers.Like("Pact Shopper"),
			"email": matchers.Like("pact.shopper@example.com"),
		},
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCheckoutBaseline).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":     matchers.Like(draft["name"]),
				"email":    matchers.Like(draft["email"]),
				"items":    matchers.ArrayMinLike(map[string]any{"id": "prod-mug", "name": "Ceramic Mug", "price": 25.0, "quantity": 1}, 1),
				"subtotal": matchers.Like(25.0),
				"shipping": matchers.Like(5.0),
				"total":    matchers.Like(30.0),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StatePromosSeeded).
		UponReceiving("a request to quote a promo code").
		WithRequest("POST", "/api/orders/apply-promo", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"code":     matchers.S(pacttest.PromoCode),
				"subtotal": matchers.Like(pacttest.PromoSubtotal),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"code":     matchers.S(pacttest.PromoCode),
				"type":     matchers.Term("percentage", "percentage|fixed"),
				"value":    matchers.Like(10.0),
				"discount": matchers.Like(pacttest.PromoDiscount),
				"subtotal": matchers.Like(pacttest.PromoSubtotal),
				"total":    matchers.Like(pacttest.PromoSubtotal - pacttest.PromoDiscount),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a tracking request for a missing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/%s/track", pacttest.MissingOrderID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		placed, err := client.PlaceOrder(ctx, draft)
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if placed == nil || placed.ID == "" {
			return fmt.Errorf("expected placed order ID to be set")
		}

		quote, err := client.QuotePromo(ctx, pacttest.PromoCode, pacttest.PromoSubtotal)
		if err != nil {
			return fmt.Errorf("quote promo: %w", err)
		}
		if quote == nil || quote.Discount <= 0 {
			return fmt.Errorf("expected a positive discount, got %+v", quote)
		}

		if _, err := client.TrackOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %s", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *storefrontClient) PlaceOrder(ctx context.Context, draft map[string]any) (*orderView, error) {
	var payload orderView
	if err := c.postJSON(ctx, "/api/orders", draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) QuotePromo(ctx context.Context, code string, subtotal float64) (*promoQuoteView, error) {
	var payload promoQuoteView
	body := map[string]any{"code": code, "subtotal": subtotal}
	if err := c.postJSON(ctx, "/api/orders/apply-promo", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) TrackOrder(ctx context.Context, orderID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/orders/%s/track", c.baseURL, orderID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *storefrontClient) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
