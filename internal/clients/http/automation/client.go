// Package automation wraps the outbound HTTP calls to the storefront's
// automation collaborator (an n8n-style webhook receiver).
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single notification attempt. Notifications are
// best effort and never retried.
const DefaultTimeout = 5 * time.Second

// Client posts JSON payloads to configured webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient instantiates the automation client with sane defaults.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{httpClient: httpClient}
}

// Post delivers the payload to the webhook URL. Any non-2xx response is an
// error; the caller decides whether the failure matters.
func (c *Client) Post(ctx context.Context, webhookURL string, payload any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("automation client not configured")
	}
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return errors.New("automation webhook URL is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode automation payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build automation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call automation webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("automation webhook returned %s", resp.Status)
	}
	return nil
}
