// Package api is the authenticated request gateway for the platform API.
// All outbound calls route through a single http.Client whose transport
// attaches the stored bearer token, so no caller handles credentials
// directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"launchpad/internal/observability"
	"launchpad/internal/tokenstore"
)

// APIError is a non-2xx response from the platform, carrying the
// server-provided message when one was present in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// ServerMessage returns the server-provided error message from err, or the
// given fallback when err carries none (transport failures, empty bodies).
func ServerMessage(err error, fallback string) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// envelope is the platform's response wrapper: payloads arrive under "data",
// error messages under "message".
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client is the gateway through which the session controller and the
// submission pipeline reach the backend.
type Client struct {
	baseURL string
	http    *http.Client
	raw     *http.Client
	logger  *observability.RequestLogger
}

// NewClient builds a gateway for the given base URL. The auth interceptor is
// composed into the transport exactly once, here, and only for requests to
// the platform API; the raw client stays uninterceptored so the credential
// never leaves the platform.
func NewClient(baseURL string, tokens tokenstore.Store, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{next: http.DefaultTransport, tokens: tokens},
		},
		raw: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport,
		},
		logger: observability.NewRequestLogger(),
	}
}

// Get issues a GET request and decodes the data envelope into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST request with a JSON body and decodes the data
// envelope into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload), out)
}

// PutJSON issues a PUT request with a JSON body and decodes the data
// envelope into out.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(payload), out)
}

// PostMultipart issues a POST request with a pre-assembled multipart body.
func (c *Client) PostMultipart(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	return c.do(ctx, http.MethodPost, path, contentType, body, out)
}

// FetchRaw retrieves an arbitrary URL (not relative to the API base), for
// probing preview assets hosted anywhere. It bypasses the auth interceptor:
// the bearer token belongs to the platform API and must not be sent to
// third-party hosts. The caller owns the body.
func (c *Client) FetchRaw(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.raw.Do(req)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	span, ctx := observability.TraceAPICall(ctx, method, path)
	defer span.End()
	defer observability.TrackRequest(method, path)()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.APIRequestErrors.WithLabelValues(method, path).Inc()
		c.logger.LogRequestError(ctx, method, path, err)
		span.SetError(err)
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	observability.APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.LogRequest(ctx, method, path, resp.StatusCode, time.Since(start).Milliseconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetError(err)
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil {
			apiErr.Message = env.Message
		}
		span.SetError(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		span.SetError(err)
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		err := fmt.Errorf("response missing data field")
		span.SetError(err)
		return err
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		span.SetError(err)
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
