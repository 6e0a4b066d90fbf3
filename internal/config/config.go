package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the review analytics
// pipeline. It includes the environment, the monitoring server port, the
// geocoding provider selection, the upstream API credential, the worker
// count for the enrichment stage, the export directory, and the search
// tuning parameters.
type Config struct {
	Env          string       // Env is the current environment: local, development, production.
	Port         int          // Port is the monitoring server port (0 disables the server).
	ProviderType string       // ProviderType selects the address-resolution provider (google, nominatim).
	APIKey       string       // APIKey is the upstream Places/Geocoding API credential.
	Workers      int          // Workers is the number of concurrent workers for the enrichment stage.
	OutputDir    string       // OutputDir is the directory CSV exports are written to.
	Search       SearchConfig // Search holds the upstream search tuning parameters.
}

// SearchConfig holds the upstream endpoints and tuning knobs for the
// place collectors.
type SearchConfig struct {
	NearbyURL            string        // NearbyURL is the bounded-proximity search endpoint.
	TextSearchURL        string        // TextSearchURL is the free-text ranked search endpoint.
	DetailsURL           string        // DetailsURL is the place details endpoint.
	MaxNearbyRadiusM     float64       // MaxNearbyRadiusM is the upstream per-query radius cap in meters.
	TileRadiusM          float64       // TileRadiusM is the radius used for each sub-query tile in meters.
	MaxPagesPerTile      int           // MaxPagesPerTile caps pagination per tile.
	MaxPagesTextSearch   int           // MaxPagesTextSearch caps pagination for the ranked search.
	SleepBetweenRequests time.Duration // SleepBetweenRequests is the politeness delay between tiles.
	NextPageTokenWait    time.Duration // NextPageTokenWait is the delay before each continuation page.
	HTTPTimeout          time.Duration // HTTPTimeout is the per-request transport timeout.
	RateLimit            int           // RateLimit is the request-per-second ceiling for the shared client.
}

// MustLoad loads the configuration from the environment (with optional
// .env file) and returns a Config struct. It panics when a tuning value
// cannot be parsed or is out of range.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("LIRA")
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("health_port", 8080)
	vpr.SetDefault("provider_type", "google")
	vpr.SetDefault("workers", 4)
	vpr.SetDefault("output_dir", "out")

	vpr.SetDefault("nearby_url", "https://maps.googleapis.com/maps/api/place/nearbysearch/json")
	vpr.SetDefault("textsearch_url", "https://maps.googleapis.com/maps/api/place/textsearch/json")
	vpr.SetDefault("details_url", "https://maps.googleapis.com/maps/api/place/details/json")
	vpr.SetDefault("max_nearby_radius_m", 50000.0)
	vpr.SetDefault("tile_radius_m", 50000.0)
	vpr.SetDefault("max_pages_per_tile", 3)
	vpr.SetDefault("max_pages_textsearch", 3)
	vpr.SetDefault("sleep_between_requests", "2s")
	vpr.SetDefault("next_page_token_wait", "2s")
	vpr.SetDefault("http_timeout", "20s")
	vpr.SetDefault("rate_limit", 10)

	// The credential keeps the name the upstream console documents.
	_ = vpr.BindEnv("api_key", "GOOGLE_MAPS_API_KEY", "LIRA_API_KEY")

	cfg := &Config{
		Env:          vpr.GetString("env"),
		Port:         vpr.GetInt("health_port"),
		ProviderType: vpr.GetString("provider_type"),
		APIKey:       vpr.GetString("api_key"),
		Workers:      vpr.GetInt("workers"),
		OutputDir:    vpr.GetString("output_dir"),
		Search: SearchConfig{
			NearbyURL:            vpr.GetString("nearby_url"),
			TextSearchURL:        vpr.GetString("textsearch_url"),
			DetailsURL:           vpr.GetString("details_url"),
			MaxNearbyRadiusM:     vpr.GetFloat64("max_nearby_radius_m"),
			TileRadiusM:          vpr.GetFloat64("tile_radius_m"),
			MaxPagesPerTile:      vpr.GetInt("max_pages_per_tile"),
			MaxPagesTextSearch:   vpr.GetInt("max_pages_textsearch"),
			SleepBetweenRequests: vpr.GetDuration("sleep_between_requests"),
			NextPageTokenWait:    vpr.GetDuration("next_page_token_wait"),
			HTTPTimeout:          vpr.GetDuration("http_timeout"),
			RateLimit:            vpr.GetInt("rate_limit"),
		},
	}

	if cfg.Workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}
	if cfg.Search.MaxPagesPerTile <= 0 || cfg.Search.MaxPagesTextSearch <= 0 {
		panic("failed to parse page caps from configuration, must be positive integers")
	}
	if cfg.Search.MaxNearbyRadiusM <= 0 || cfg.Search.TileRadiusM <= 0 {
		panic("failed to parse radii from configuration, must be positive values")
	}
	if cfg.Search.HTTPTimeout <= 0 {
		panic("failed to parse http timeout from configuration")
	}

	return cfg
}
