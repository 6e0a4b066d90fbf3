package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/config"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/geo"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/geocode"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/insights"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/places"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/reviews"
)

// Strategy selects how candidate places are collected.
type Strategy string

const (
	// StrategyTiled covers the requested radius with overlapping
	// proximity sub-queries.
	StrategyTiled Strategy = "tiled"
	// StrategyRanked runs a single relevance-ranked free-text search and
	// filters by exact distance.
	StrategyRanked Strategy = "ranked"
)

// Validation errors for search requests.
var (
	ErrEmptyAddress    = errors.New("search address must not be empty")
	ErrEmptyKeyword    = errors.New("search keyword must not be empty")
	ErrInvalidRadius   = errors.New("search radius must be positive")
	ErrUnknownStrategy = errors.New("unknown collection strategy")
)

// SearchRequest describes one pipeline run.
type SearchRequest struct {
	Address     string   // Address is the free-form search location text.
	Keyword     string   // Keyword is the place keyword (tiled) or full query text (ranked).
	RadiusMiles float64  // RadiusMiles is the requested search radius.
	Strategy    Strategy // Strategy selects the collector; empty defaults to tiled.
}

// Result carries everything one run produced.
type Result struct {
	Resolved      *geocode.ResolvedAddress // Resolved is the resolved search center.
	Places        []models.Place           // Places are the filtered, distance-sorted candidates.
	Details       []models.PlaceDetails    // Details are the enriched per-place rows.
	Reviews       []models.Review          // Reviews are the flat review rows.
	Insights      []insights.Row           // Insights are the analytics-ready review rows.
	TileCount     int                      // TileCount is the number of sub-queries used (0 for ranked).
	SearchRadiusM int                      // SearchRadiusM is the per-tile radius actually sent upstream.
}

// Pipeline wires address resolution, tile planning, collection and
// enrichment into one run.
type Pipeline struct {
	log       *slog.Logger       // log is the logger for pipeline events
	cfg       *config.Config     // cfg holds the search tuning parameters
	resolver  geocode.Provider   // resolver turns address text into a coordinate
	collector *places.Collector  // collector gathers candidate places
	enricher  *reviews.Collector // enricher fetches details and reviews
}

// NewPipeline creates a Pipeline from its collaborators.
func NewPipeline(
	log *slog.Logger,
	cfg *config.Config,
	resolver geocode.Provider,
	collector *places.Collector,
	enricher *reviews.Collector,
) *Pipeline {
	return &Pipeline{log: log, cfg: cfg, resolver: resolver, collector: collector, enricher: enricher}
}

// Run executes one search end to end: resolve the address, plan the
// tiles, collect candidates with the requested strategy, enrich the
// survivors with details and reviews, and derive the analytics rows.
// A failure in resolution or collection aborts the run; enrichment
// failures only drop the affected places.
func (p *Pipeline) Run(ctx context.Context, req SearchRequest) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	resolved, err := p.resolver.Resolve(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	center := resolved.Coordinates
	userRadiusM := geo.MilesToMeters(req.RadiusMiles)
	tileRadiusM := math.Min(p.cfg.Search.TileRadiusM, p.cfg.Search.MaxNearbyRadiusM)
	filter := places.RadiusFilter{Center: center, RadiusM: userRadiusM}

	p.log.InfoContext(ctx, "Resolved search center",
		"address", resolved.FormattedAddress,
		"lat", center.Latitude, "lon", center.Longitude,
		"radius_miles", req.RadiusMiles)

	result := &Result{Resolved: resolved}

	switch strategy(req) {
	case StrategyTiled:
		tiles := geo.GenerateTileCenters(center, userRadiusM, tileRadiusM)
		// The radius sent per tile never exceeds the user's own radius.
		perTileRadiusM := int(math.Min(userRadiusM, tileRadiusM))

		p.log.InfoContext(ctx, "Collecting places with tiled strategy",
			"tiles", len(tiles), "per_tile_radius_m", perTileRadiusM)

		result.TileCount = len(tiles)
		result.SearchRadiusM = perTileRadiusM
		result.Places, err = p.collector.CollectTiled(ctx, tiles, perTileRadiusM, req.Keyword, &filter)
	case StrategyRanked:
		p.log.InfoContext(ctx, "Collecting places with ranked strategy", "query", req.Keyword)

		result.Places, err = p.collector.CollectRanked(ctx, req.Keyword, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect places: %w", err)
	}

	result.Details, result.Reviews, err = p.enricher.Collect(ctx, result.Places)
	if err != nil {
		return nil, fmt.Errorf("failed to collect reviews: %w", err)
	}

	result.Insights = insights.Enrich(result.Reviews)

	p.log.InfoContext(ctx, "Pipeline run finished",
		"places", len(result.Places),
		"details", len(result.Details),
		"reviews", len(result.Reviews))

	return result, nil
}

func strategy(req SearchRequest) Strategy {
	if req.Strategy == "" {
		return StrategyTiled
	}
	return req.Strategy
}

func validate(req SearchRequest) error {
	if req.Address == "" {
		return ErrEmptyAddress
	}
	if req.Keyword == "" {
		return ErrEmptyKeyword
	}
	if req.RadiusMiles <= 0 {
		return ErrInvalidRadius
	}
	switch strategy(req) {
	case StrategyTiled, StrategyRanked:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
	}
}
