package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spec-kit/admin-portal/internal/config"
	"github.com/spec-kit/admin-portal/internal/observability"
)

// Upstream resource families.
const (
	ResourceCustomers = "customers"
	ResourceDevices   = "devices"
	ResourceTickets   = "tickets"
	ResourceHealth    = "health"
)

const maxResponseBytes = 8 << 20

// Client forwards portal operations to the device-management API.
// It authenticates with the service credential only; operator tokens never leave the portal.
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	healthTimeout time.Duration
	metrics       *observability.Metrics
	now           func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMetrics records every outbound call.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock replaces the clock used for health timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient builds a client from the upstream service credential.
func NewClient(cfg config.UpstreamConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		httpClient:    &http.Client{},
		healthTimeout: cfg.HealthTimeout(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestIDKey struct{}

// WithRequestID tags outbound calls made with ctx with the inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func (c *Client) list(ctx context.Context, resource string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, resource, "list", "/"+resource, query, nil)
}

func (c *Client) get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return c.do(ctx, http.MethodGet, resource, "get", resourcePath(resource, id), nil, nil)
}

func (c *Client) update(ctx context.Context, resource, id string, fields any) (json.RawMessage, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return c.do(ctx, http.MethodPatch, resource, "update", resourcePath(resource, id), nil, fields)
}

func (c *Client) do(ctx context.Context, method, resource, operation, path string, query url.Values, body any) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", resource, operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", resource, operation, err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(resource, operation, observability.OutcomeUnreachable)
		return nil, &UpstreamError{StatusText: StatusTextUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		c.metrics.RecordUpstream(resource, operation, observability.OutcomeHTTPError)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil || !json.Valid(payload) {
		c.metrics.RecordUpstream(resource, operation, observability.OutcomeInvalidBody)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, StatusText: StatusTextInvalidResponse, Err: err}
	}

	c.metrics.RecordUpstream(resource, operation, observability.OutcomeOK)
	return json.RawMessage(payload), nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := req.Context().Value(requestIDKey{}).(string); ok {
		req.Header.Set("X-Request-ID", id)
	}
}

func resourcePath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}
