// Package httpclient implements the APIClient contract over net/http.
// Retries, backoff and timeouts all live here; the adapters above it only
// see bodies and status codes.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/XavierBriggs/Scoreline/pkg/contracts"
)

const (
	userAgent         = "Scoreline/1.0 (plaintext sports reports)"
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	retryDelay        = 500 * time.Millisecond
)

// Client is a retrying JSON API client rooted at a base URL.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	maxRetries int
}

var _ contracts.APIClient = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHeader sets a default header sent on every request (e.g. an
// Authorization key).
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries overrides the maximum number of attempts per request.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// New creates a client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    make(map[string]string),
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET against path with the given query. It retries
// transport failures, 5xx and 429 responses with exponential backoff;
// other statuses are returned to the caller on the first attempt. The
// returned error is non-nil only for transport-level failures.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var (
		lastErr    error
		body       []byte
		statusCode int
	)

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, statusCode, lastErr = c.doRequest(ctx, fullURL)
		if lastErr != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			continue
		}
		if statusCode >= 500 || statusCode == http.StatusTooManyRequests {
			continue
		}
		return body, statusCode, nil
	}

	if lastErr != nil {
		return nil, 0, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return body, statusCode, nil
}

// doRequest performs a single HTTP request.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}
