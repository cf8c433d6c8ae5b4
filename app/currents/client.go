package currents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// KeyProvider returns the API credential. It is consulted on every
// request so a key supplied after startup takes effect without a
// restart.
type KeyProvider func() string

// Client performs authenticated GET requests against the Currents API.
// The underlying http.Client is created on first use and shared across
// all calls. Client performs no retries; every failure is surfaced once
// as a classified *Error.
type Client struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	key       KeyProvider

	mu         sync.Mutex
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration, userAgent string, key KeyProvider) *Client {
	return &Client{
		baseURL:   baseURL,
		timeout:   timeout,
		userAgent: userAgent,
		key:       key,
	}
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get performs an authenticated request against endpoint and decodes
// the JSON payload into out. A missing credential fails before any
// network I/O is attempted.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	apiKey := c.key()
	if apiKey == "" {
		return &Error{
			Kind:    ErrConfiguration,
			Message: "CURRENTS_API_KEY environment variable is required",
		}
	}

	requestURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &Error{
			Kind:    ErrNetwork,
			Message: fmt.Sprintf("Network error: %v", err),
			Err:     err,
		}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client().Do(req)
	if err != nil {
		return c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode, resp.Status); err != nil {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Close releases the shared connection resource. Safe to call when no
// request was ever made; calling it again is a no-op.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
		slog.Debug("HTTP client closed")
	}
}

// client lazily creates the shared http.Client. Creation is guarded so
// concurrent first callers observe a single instance.
func (c *Client) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
		slog.Debug("HTTP client initialized", "timeout", c.timeout)
	}
	return c.httpClient
}

func (c *Client) classifyTransportError(err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &Error{
			Kind:    ErrTimeout,
			Message: fmt.Sprintf("Request timeout after %v", c.timeout),
			Err:     err,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:    ErrTimeout,
			Message: fmt.Sprintf("Request timeout after %v", c.timeout),
			Err:     err,
		}
	}
	return &Error{
		Kind:    ErrNetwork,
		Message: fmt.Sprintf("Network error: %v", err),
		Err:     err,
	}
}

func classifyStatus(code int, status string) *Error {
	switch {
	case code == http.StatusUnauthorized:
		return &Error{
			Kind:       ErrAuth,
			StatusCode: code,
			Message:    "Invalid API key. Please check your CURRENTS_API_KEY.",
		}
	case code == http.StatusTooManyRequests:
		return &Error{
			Kind:       ErrRateLimit,
			StatusCode: code,
			Message:    "Rate limit exceeded. Free tier allows 600 requests per hour.",
		}
	case code == http.StatusBadRequest:
		return &Error{
			Kind:       ErrBadRequest,
			StatusCode: code,
			Message:    "Bad request. Please check your parameters.",
		}
	case code >= 500:
		return &Error{
			Kind:       ErrUpstream,
			StatusCode: code,
			Message:    "API server error. Please try again later.",
		}
	case code < 200 || code >= 300:
		return &Error{
			Kind:       ErrHTTP,
			StatusCode: code,
			Message:    fmt.Sprintf("HTTP error: %d %s", code, status),
		}
	}
	return nil
}
