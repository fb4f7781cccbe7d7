package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/islam174932/EcommerceWeb/core"
	"github.com/islam174932/EcommerceWeb/resilience"
)

// authStyle selects how the session token is attached to a request.
// The external API is inconsistent: cart and wishlist endpoints read a
// custom "token" header while order endpoints expect a Bearer token.
// This inconsistency is inherited, not a choice of this client.
type authStyle int

const (
	authNone authStyle = iota
	authTokenHeader
	authBearer
)

// Client issues authenticated HTTP calls to the external commerce API and
// normalizes outcomes into (payload, *APIError)
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     core.Logger
	telemetry  core.Telemetry
	retry      *core.RetryConfig
	breaker    *resilience.CircuitBreaker
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the logger used for request/response events
func WithLogger(logger core.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTelemetry sets the telemetry provider used for spans and metrics
func WithTelemetry(t core.Telemetry) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.telemetry = t
		}
	}
}

// WithTransport replaces the underlying round tripper; used to install
// the otelhttp-instrumented transport
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		if rt != nil {
			c.httpClient.Transport = rt
		}
	}
}

// NewClient creates a gateway client from configuration
func NewClient(cfg *core.Config, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
		},
		logger:    &core.NoOpLogger{},
		telemetry: &core.NoOpTelemetry{},
		retry:     &cfg.Retry,
		breaker:   resilience.NewCircuitBreaker("commerce-api", cfg.CircuitBreaker),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker.SetLogger(c.logger)
	return c
}

// BreakerState exposes the circuit breaker state for health reporting
func (c *Client) BreakerState() string {
	return c.breaker.GetState()
}

// do issues one request and decodes the 2xx body into out (when non-nil).
// All failure modes collapse into *APIError: transport errors carry
// core.ErrConnectionFailed with status 0, non-2xx statuses are classified
// by classifyStatus, and undecodable 2xx bodies fail closed with
// core.ErrMalformedResponse.
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, style authStyle, token string, out interface{}) error {
	ctx, span := c.telemetry.StartSpan(ctx, op)
	defer span.End()
	span.SetAttribute("http.method", method)
	span.SetAttribute("http.path", path)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return &APIError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", core.ErrRequestFailed)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		span.RecordError(err)
		return &APIError{Op: op, Err: core.ErrRequestFailed}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	switch style {
	case authTokenHeader:
		req.Header.Set("token", token)
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("Commerce API unreachable", map[string]interface{}{
			"operation": op,
			"method":    method,
			"path":      path,
			"error":     err.Error(),
		})
		return &APIError{Op: op, Err: core.ErrConnectionFailed}
	}
	defer resp.Body.Close()

	span.SetAttribute("http.status_code", resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return &APIError{Op: op, Status: resp.StatusCode, Err: core.ErrConnectionFailed}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		_ = json.Unmarshal(raw, &envelope) // best effort, body may not be JSON
		apiErr := &APIError{
			Op:            op,
			Status:        resp.StatusCode,
			ServerMessage: envelope.bestMessage(),
			Err:           classifyStatus(resp.StatusCode),
		}
		span.RecordError(apiErr)
		c.telemetry.RecordMetric("gateway.requests", 1, map[string]string{
			"operation": op,
			"status":    strconv.Itoa(resp.StatusCode),
		})
		c.logger.Warn("Commerce API call failed", map[string]interface{}{
			"operation": op,
			"method":    method,
			"path":      path,
			"status":    resp.StatusCode,
			"message":   apiErr.ServerMessage,
		})
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			span.RecordError(err)
			c.logger.Error("Commerce API returned malformed body", map[string]interface{}{
				"operation": op,
				"path":      path,
				"error":     err.Error(),
			})
			return &APIError{Op: op, Status: resp.StatusCode, Err: core.ErrMalformedResponse}
		}
	}

	c.telemetry.RecordMetric("gateway.requests", 1, map[string]string{
		"operation": op,
		"status":    strconv.Itoa(resp.StatusCode),
	})
	c.logger.Debug("Commerce API call succeeded", map[string]interface{}{
		"operation": op,
		"method":    method,
		"path":      path,
		"status":    resp.StatusCode,
	})
	return nil
}

// get issues an idempotent GET with retry and circuit breaker protection.
// Mutations never go through this path: they are sent exactly once and the
// optimistic state layer owns recovery.
func (c *Client) get(ctx context.Context, op, path string, style authStyle, token string, out interface{}) error {
	err := resilience.RetryWithCircuitBreaker(ctx, c.retry, c.breaker, func() error {
		return c.do(ctx, op, http.MethodGet, path, nil, style, token, out)
	})
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	// Breaker rejections, context cancellation and retry exhaustion still
	// surface through the uniform failure shape
	return &APIError{Op: op, Err: err}
}
