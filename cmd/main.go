package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/config"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/export"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/geocode"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/metrics"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/places"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/reviews"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/service"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	address := flag.String("address", "", "search center as free-form address text (required)")
	keyword := flag.String("keyword", "", "place keyword or free-text query (required)")
	radiusMiles := flag.Float64("radius", 10, "search radius in miles")
	strategyFlag := flag.String("strategy", "tiled", "collection strategy: tiled or ranked")
	outDir := flag.String("out", "", "export directory (defaults to configured output dir)")
	flag.Parse()

	// Create a context that will be canceled when an interrupt signal is received.
	// This allows aborting a long collection run cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// The collectors and the Google resolver cannot run without a credential.
	if cfg.APIKey == "" {
		log.Fatal("Missing GOOGLE_MAPS_API_KEY. Set it in the environment or a .env file.")
	}

	// Create a separate registry for application metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Create the address-resolution provider using the factory pattern.
	resolver, err := geocode.NewProvider(geocode.ProviderConfig{
		Type:      geocode.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.Search.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create address-resolution provider: %v", err)
	}

	logger.InfoContext(ctx, "Address-resolution provider initialized", "type", cfg.ProviderType)

	// One shared JSON client keeps the global rate limit across the
	// collectors and the enrichment stage.
	client := places.NewClient(cfg.Search.HTTPTimeout, cfg.Search.RateLimit, logger)
	collector := places.NewCollector(client, cfg.APIKey, cfg.Search, logger, appMetrics)
	enricher := reviews.NewCollector(client, cfg.APIKey, cfg.Search, logger, appMetrics, cfg.Workers)

	pipeline := service.NewPipeline(logger, cfg, resolver, collector, enricher)

	// Large-radius runs take minutes; expose metrics and health while running.
	if cfg.Port > 0 {
		go startMonitoringServer(ctx, logger, reg, cfg.Port)
	}

	result, err := pipeline.Run(ctx, service.SearchRequest{
		Address:     *address,
		Keyword:     *keyword,
		RadiusMiles: *radiusMiles,
		Strategy:    service.Strategy(*strategyFlag),
	})
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	logger.InfoContext(ctx, "Search finished",
		"center", result.Resolved.FormattedAddress,
		"tiles", result.TileCount,
		"places", len(result.Places),
		"reviews", len(result.Reviews))

	dir := *outDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	written, err := export.SaveAll(dir, result.Places, result.Reviews, result.Insights)
	if err != nil {
		log.Fatalf("Failed to write exports: %v", err)
	}

	for _, path := range written {
		logger.InfoContext(ctx, "Export written", "file", path)
	}
}

// startMonitoringServer starts an HTTP server that provides health check
// and metrics endpoints for the duration of the run.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - port: The port number on which the server will listen.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
