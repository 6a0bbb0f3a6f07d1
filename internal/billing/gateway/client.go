// Package gateway implements the billing ports over the remote HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ngrassa/plateforme-electronique/internal/billing"
	"github.com/ngrassa/plateforme-electronique/internal/core"
)

// fallbackMessage stands in when the server returns a failure with an
// empty body.
const fallbackMessage = "Erreur API"

// TokenSource supplies the bearer credential for a request. An empty
// result sends the request unauthenticated; the server rejects it.
type TokenSource func() string

// StaticToken wraps a fixed credential as a TokenSource.
func StaticToken(token string) TokenSource {
	return func() string { return token }
}

type Client struct {
	http    *http.Client
	baseURL string
	token   TokenSource
}

// Ensure interface conformance
var (
	_ billing.InvoiceLister  = (*Client)(nil)
	_ billing.PaymentLister  = (*Client)(nil)
	_ billing.InvoiceCreator = (*Client)(nil)
)

// New builds a gateway client. The base URL is normalized once: trailing
// slashes and a redundant trailing "/api" are stripped, so both the bare
// host and a URL already ending in the API prefix are accepted. Transport
// failures are retried a couple of times before surfacing; any response the
// server does produce is returned untouched, since a non-2xx body is the
// user-facing message and retrying it would only hide it and burn the
// caller's deadline.
func New(baseURL string, token TokenSource) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		http:    rc.StandardClient(),
		baseURL: NormalizeBaseURL(baseURL),
		token:   token,
	}
}

// NormalizeBaseURL strips trailing slashes and a trailing "/api" segment.
func NormalizeBaseURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, "/api")
	return strings.TrimRight(s, "/")
}

// ListInvoices issues a paginated owner-scoped read.
func (c *Client) ListInvoices(ctx context.Context, ownerID string, page, size int) (core.InvoicePage, error) {
	query := url.Values{}
	query.Set("ownerUserId", ownerID)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result core.InvoicePage
	if err := c.get(ctx, "/api/invoices", query, &result); err != nil {
		return core.InvoicePage{}, fmt.Errorf("list invoices (owner=%s, page=%d): %w", ownerID, page, err)
	}
	return result, nil
}

// ListPayments reads all payments.
func (c *Client) ListPayments(ctx context.Context) ([]core.Payment, error) {
	var result []core.Payment
	if err := c.get(ctx, "/api/payments", nil, &result); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return result, nil
}

// CreateInvoice posts a normalized creation payload.
func (c *Client) CreateInvoice(ctx context.Context, payload core.InvoicePayload) (core.Invoice, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("marshal invoice payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/invoices", bytes.NewReader(body))
	if err != nil {
		return core.Invoice{}, fmt.Errorf("build create invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	var created core.Invoice
	if err := c.do(req, &created); err != nil {
		return core.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return created, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)
	return c.do(req, v)
}

// authorize attaches the bearer header when a token is available. The
// client does not pre-validate credentials.
func (c *Client) authorize(req *http.Request) {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = fallbackMessage
		}
		return &billing.APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
