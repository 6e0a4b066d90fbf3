package places_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/places"
	"golang.org/x/time/rate"
)

func TestClientGetJSON(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("encodes query parameters and decodes the payload", func(t *testing.T) {
		mock := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "places.test", req.URL.Host)
			assert.Equal(t, "pizza & pasta", req.URL.Query().Get("keyword"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			return jsonResponse(`{"status": "OK"}`), nil
		}}
		client := places.NewClientWith(mock, rate.NewLimiter(rate.Inf, 1), logger)

		params := url.Values{}
		params.Set("keyword", "pizza & pasta")

		var out struct {
			Status string `json:"status"`
		}
		err := client.GetJSON(ctx, "https://places.test/nearby", params, &out)

		require.NoError(t, err)
		assert.Equal(t, "OK", out.Status)
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		mock := &mockHTTPClient{doFunc: func(_ *http.Request) (*http.Response, error) {
			resp := jsonResponse(`{"error": "server exploded"}`)
			resp.StatusCode = http.StatusInternalServerError
			return resp, nil
		}}
		client := places.NewClientWith(mock, rate.NewLimiter(rate.Inf, 1), logger)

		var out map[string]any
		err := client.GetJSON(ctx, "https://places.test/nearby", url.Values{}, &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
		assert.Contains(t, err.Error(), "server exploded")
	})

	t.Run("malformed payload is a decode error", func(t *testing.T) {
		mock := &mockHTTPClient{doFunc: func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(`not json at all`), nil
		}}
		client := places.NewClientWith(mock, rate.NewLimiter(rate.Inf, 1), logger)

		var out map[string]any
		err := client.GetJSON(ctx, "https://places.test/nearby", url.Values{}, &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("canceled context stops before the request", func(t *testing.T) {
		called := false
		mock := &mockHTTPClient{doFunc: func(_ *http.Request) (*http.Response, error) {
			called = true
			return jsonResponse(`{}`), nil
		}}
		// A zero-burst limiter can never admit a request, so the wait
		// only ends with the context.
		client := places.NewClientWith(mock, rate.NewLimiter(1, 0), logger)

		canceledCtx, cancel := context.WithCancel(ctx)
		cancel()

		var out map[string]any
		err := client.GetJSON(canceledCtx, "https://places.test/nearby", url.Values{}, &out)

		require.Error(t, err)
		assert.False(t, called)
	})
}
