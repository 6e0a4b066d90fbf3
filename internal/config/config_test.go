package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/config"
)

func TestMustLoad_FromEnv(t *testing.T) {
	t.Setenv("LIRA_ENV", "local")
	t.Setenv("GOOGLE_MAPS_API_KEY", "testAPIKey")
	t.Setenv("LIRA_HEALTH_PORT", "9090")
	t.Setenv("LIRA_PROVIDER_TYPE", "nominatim")
	t.Setenv("LIRA_WORKERS", "8")
	t.Setenv("LIRA_OUTPUT_DIR", "/tmp/exports")
	t.Setenv("LIRA_TILE_RADIUS_M", "25000")
	t.Setenv("LIRA_MAX_PAGES_PER_TILE", "2")
	t.Setenv("LIRA_SLEEP_BETWEEN_REQUESTS", "500ms")
	t.Setenv("LIRA_NEXT_PAGE_TOKEN_WAIT", "3s")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "/tmp/exports", cfg.OutputDir)
	assert.InEpsilon(t, 25000.0, cfg.Search.TileRadiusM, 1e-9)
	assert.Equal(t, 2, cfg.Search.MaxPagesPerTile)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.SleepBetweenRequests)
	assert.Equal(t, 3*time.Second, cfg.Search.NextPageTokenWait)
}

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Contains(t, cfg.Search.NearbyURL, "nearbysearch")
	assert.Contains(t, cfg.Search.TextSearchURL, "textsearch")
	assert.Contains(t, cfg.Search.DetailsURL, "details")
	assert.InEpsilon(t, 50000.0, cfg.Search.MaxNearbyRadiusM, 1e-9)
	assert.InEpsilon(t, 50000.0, cfg.Search.TileRadiusM, 1e-9)
	assert.Equal(t, 3, cfg.Search.MaxPagesPerTile)
	assert.Equal(t, 3, cfg.Search.MaxPagesTextSearch)
	assert.Equal(t, 2*time.Second, cfg.Search.SleepBetweenRequests)
	assert.Equal(t, 2*time.Second, cfg.Search.NextPageTokenWait)
	assert.Equal(t, 20*time.Second, cfg.Search.HTTPTimeout)
	assert.Equal(t, 10, cfg.Search.RateLimit)
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("LIRA_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PageCapError(t *testing.T) {
	t.Setenv("LIRA_MAX_PAGES_PER_TILE", "error_value")

	assert.PanicsWithValue(t, "failed to parse page caps from configuration, must be positive integers", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RadiusError(t *testing.T) {
	t.Setenv("LIRA_TILE_RADIUS_M", "-1")

	assert.PanicsWithValue(t, "failed to parse radii from configuration, must be positive values", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("LIRA_HTTP_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse http timeout from configuration", func() {
		config.MustLoad()
	})
}
