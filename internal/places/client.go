// Package places implements the upstream place-catalog collectors: a
// tiled nearest-neighbor strategy and a single ranked free-text strategy,
// both producing deduplicated, distance-filtered, distance-sorted
// candidate lists.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the JSON transport shared by the collectors and the
// enrichment stage. It owns the request timeout and a global rate limiter
// so every upstream call, regardless of caller, respects the same
// request-per-second ceiling.
type Client struct {
	http    HTTPClient    // http executes the requests
	limiter *rate.Limiter // limiter bounds the request rate across all callers
	log     *slog.Logger  // log is the logger for transport events
}

// NewClient creates a Client with a standard HTTP transport using the
// given timeout and requests-per-second limit.
func NewClient(timeout time.Duration, rateLimit int, log *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log:     log,
	}
}

// NewClientWith allows injecting a custom HTTP client and limiter.
// Useful for testing with mocked transports.
func NewClientWith(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{http: client, limiter: limiter, log: log}
}

// GetJSON performs a GET against rawURL with the given query parameters
// and decodes the JSON response body into out. Any transport error or
// non-200 response is returned as an error; interpreting the payload's
// own status field is the caller's concern.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse request URL: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	c.log.DebugContext(ctx, "Upstream request", "url", reqURL.Redacted())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Upstream API error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("upstream API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
