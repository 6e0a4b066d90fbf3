package places

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/config"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/geo"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/metrics"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// Endpoint labels for metrics.
const (
	endpointNearby     = "nearby"
	endpointTextSearch = "textsearch"
)

// RadiusFilter is the true user-requested geographic constraint, distinct
// from (and normally smaller than) the per-tile query radius.
type RadiusFilter struct {
	Center  models.Coordinates // Center is the resolved search center.
	RadiusM float64            // RadiusM is the requested radius in meters (inclusive boundary).
}

// Collector issues upstream catalog queries and merges raw results into
// deduplicated candidate lists. All calls are synchronous; the only
// suspension points are the configured politeness delays and the shared
// client's rate limiter.
type Collector struct {
	client  *Client             // client is the shared JSON transport
	apiKey  string              // apiKey is the upstream API credential
	cfg     config.SearchConfig // cfg holds page caps, endpoints and delays
	log     *slog.Logger        // log is the logger for collection events
	metrics *metrics.Metrics    // metrics tracks pages, errors and kept candidates
}

// NewCollector creates a Collector on top of the shared client.
func NewCollector(
	client *Client,
	apiKey string,
	cfg config.SearchConfig,
	log *slog.Logger,
	m *metrics.Metrics,
) *Collector {
	return &Collector{client: client, apiKey: apiKey, cfg: cfg, log: log, metrics: m}
}

// CollectTiled runs one keyword-bounded proximity query per tile center,
// each bounded by perTileRadiusM meters, and merges the results by place
// identifier (first occurrence wins).
//
// When filter is non-nil every merged candidate's exact great-circle
// distance to the filter center is computed, candidates beyond the filter
// radius are dropped, and the survivors are sorted ascending by distance.
// Without a filter, distances stay nil and insertion order (tile order,
// then within-tile result order) is preserved.
//
// Any upstream status other than OK or ZERO_RESULTS, and any transport
// failure, aborts the whole collection: the error is returned and results
// merged so far are discarded.
func (c *Collector) CollectTiled(
	ctx context.Context,
	tiles []models.Coordinates,
	perTileRadiusM int,
	keyword string,
	filter *RadiusFilter,
) ([]models.Place, error) {
	seen := make(map[string]struct{})
	out := []models.Place{}

	for idx, tile := range tiles {
		c.log.DebugContext(ctx, "Querying tile",
			"tile", idx+1, "tiles", len(tiles), "lat", tile.Latitude, "lon", tile.Longitude)

		results, err := c.nearbyPages(ctx, tile, perTileRadiusM, keyword)
		if err != nil {
			return nil, fmt.Errorf("tile %d/%d: %w", idx+1, len(tiles), err)
		}

		for _, raw := range results {
			out = mergeCandidate(out, seen, raw, filter)
		}

		if err = wait(ctx, c.cfg.SleepBetweenRequests); err != nil {
			return nil, err
		}
	}

	if filter != nil {
		sortByDistance(out)
	}

	c.metrics.PlacesCollected.WithLabelValues("tiled").Add(float64(len(out)))
	c.log.InfoContext(ctx, "Tiled collection finished", "tiles", len(tiles), "places", len(out))

	return out, nil
}

// CollectRanked runs a single free-text ranked query. The upstream call
// is not geographically bounded, so exact-distance filtering against the
// given filter is mandatory: survivors are deduplicated by identifier,
// records without coordinates are dropped, and the result is sorted
// ascending by distance.
func (c *Collector) CollectRanked(
	ctx context.Context,
	query string,
	filter RadiusFilter,
) ([]models.Place, error) {
	raw, err := c.textSearchPages(ctx, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := []models.Place{}
	for _, res := range raw {
		out = mergeCandidate(out, seen, res, &filter)
	}

	sortByDistance(out)

	c.metrics.PlacesCollected.WithLabelValues("ranked").Add(float64(len(out)))
	c.log.InfoContext(ctx, "Ranked collection finished", "query", query, "places", len(out))

	return out, nil
}

// nearbyPages fetches all pages of one bounded proximity query, following
// the continuation token up to the configured page cap and pausing the
// configured delay before each continuation page (tokens are not
// immediately valid upstream).
func (c *Collector) nearbyPages(
	ctx context.Context,
	center models.Coordinates,
	radiusM int,
	keyword string,
) ([]placeResult, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(center))
	params.Set("radius", strconv.Itoa(radiusM))
	params.Set("keyword", keyword)
	params.Set("key", c.apiKey)

	return c.fetchPages(ctx, endpointNearby, c.cfg.NearbyURL, params, c.cfg.MaxPagesPerTile)
}

// textSearchPages fetches all pages of one free-text ranked query with
// its own page cap.
func (c *Collector) textSearchPages(ctx context.Context, query string) ([]placeResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)

	return c.fetchPages(ctx, endpointTextSearch, c.cfg.TextSearchURL, params, c.cfg.MaxPagesTextSearch)
}

// fetchPages walks the continuation-token pagination protocol shared by
// both search endpoints.
func (c *Collector) fetchPages(
	ctx context.Context,
	endpoint string,
	rawURL string,
	params url.Values,
	maxPages int,
) ([]placeResult, error) {
	var all []placeResult
	page := 0

	for {
		var resp searchResponse

		start := time.Now()
		err := c.client.GetJSON(ctx, rawURL, params, &resp)
		c.metrics.RequestSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if err != nil {
			c.metrics.APIErrors.Inc()
			return nil, fmt.Errorf("%s search: %w", endpoint, err)
		}

		if err = checkStatus(resp.Status, resp.ErrorMessage); err != nil {
			c.metrics.APIErrors.Inc()
			return nil, fmt.Errorf("%s search: %w", endpoint, err)
		}

		c.metrics.PagesFetched.WithLabelValues(endpoint).Inc()
		all = append(all, resp.Results...)

		page++
		if resp.NextPageToken == "" || page >= maxPages {
			break
		}

		if err = wait(ctx, c.cfg.NextPageTokenWait); err != nil {
			return nil, err
		}
		params.Set("pagetoken", resp.NextPageToken)
	}

	return all, nil
}

// mergeCandidate applies the shared merge rules to one raw record:
// skip on missing or already-seen identifier, skip on absent coordinates,
// and when a filter is given, skip beyond-radius candidates and attach
// exact distances to the survivors.
func mergeCandidate(
	out []models.Place,
	seen map[string]struct{},
	raw placeResult,
	filter *RadiusFilter,
) []models.Place {
	if raw.PlaceID == "" {
		return out
	}
	if _, ok := seen[raw.PlaceID]; ok {
		return out
	}
	if raw.Geometry == nil || raw.Geometry.Location == nil {
		return out
	}

	loc := models.Coordinates{Latitude: raw.Geometry.Location.Lat, Longitude: raw.Geometry.Location.Lng}
	place := models.Place{
		PlaceID:   raw.PlaceID,
		Name:      raw.Name,
		Vicinity:  raw.addressText(),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Types:     strings.Join(raw.Types, ","),
	}

	if filter != nil {
		distM := geo.HaversineM(filter.Center, loc)
		if distM > filter.RadiusM {
			return out
		}
		distMiles := geo.MetersToMiles(distM)
		place.DistanceMeters = &distM
		place.DistanceMiles = &distMiles
	}

	seen[raw.PlaceID] = struct{}{}

	return append(out, place)
}

// sortByDistance orders filtered candidates ascending by distance,
// keeping insertion order for equal distances.
func sortByDistance(places []models.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return *places[i].DistanceMeters < *places[j].DistanceMeters
	})
}

// formatLatLng renders a coordinate pair for the wire as "lat,lng" with
// the shortest exact decimal representation.
func formatLatLng(c models.Coordinates) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// wait sleeps for the given duration, aborting early when the context is
// canceled. A zero or negative duration returns immediately.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
