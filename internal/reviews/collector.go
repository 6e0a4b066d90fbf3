// Package reviews enriches collected places with their public reviews
// and full postal addresses via the upstream details endpoint.
package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/config"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/metrics"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/places"
)

// detailsFields is the field mask requested from the details endpoint.
const detailsFields = "place_id,name,formatted_address,address_component,rating,user_ratings_total,review"

// detailsResponse is the subset of the upstream details payload consumed
// by the enrichment stage.
type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Result       *detailResult `json:"result"`
}

type detailResult struct {
	PlaceID           string          `json:"place_id"`
	Name              string          `json:"name"`
	FormattedAddress  string          `json:"formatted_address"`
	AddressComponents []addrComponent `json:"address_components"`
	Rating            float64         `json:"rating"`
	UserRatingsTotal  int             `json:"user_ratings_total"`
	Reviews           []reviewResult  `json:"reviews"`
}

type addrComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type reviewResult struct {
	AuthorName              string  `json:"author_name"`
	Rating                  float64 `json:"rating"`
	Text                    string  `json:"text"`
	Time                    int64   `json:"time"`
	RelativeTimeDescription string  `json:"relative_time_description"`
	Language                string  `json:"language"`
}

// Collector fetches place details concurrently. Unlike the core place
// collectors, enrichment is best-effort: a place whose details fetch
// fails is logged and skipped rather than aborting the run.
type Collector struct {
	client  *places.Client      // client is the shared JSON transport
	apiKey  string              // apiKey is the upstream API credential
	cfg     config.SearchConfig // cfg carries the details endpoint
	log     *slog.Logger        // log is the logger for enrichment events
	metrics *metrics.Metrics    // metrics tracks errors and active workers
	workers int                 // workers is the pool size
}

// NewCollector creates a reviews Collector with the given worker count.
func NewCollector(
	client *places.Client,
	apiKey string,
	cfg config.SearchConfig,
	log *slog.Logger,
	m *metrics.Metrics,
	workers int,
) *Collector {
	return &Collector{client: client, apiKey: apiKey, cfg: cfg, log: log, metrics: m, workers: workers}
}

// perPlace holds one worker's output slot. Workers write disjoint
// indices, so no locking is needed.
type perPlace struct {
	details *models.PlaceDetails
	reviews []models.Review
}

// Collect fetches details and reviews for every candidate using a worker
// pool. Output order is deterministic: results follow the input candidate
// order regardless of which worker finished first. Places whose fetch
// failed are omitted.
func (c *Collector) Collect(
	ctx context.Context,
	candidates []models.Place,
) ([]models.PlaceDetails, []models.Review, error) {
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	c.log.InfoContext(ctx, "Collecting place details. Starting worker pool.",
		"jobs", len(candidates), "num_workers", c.workers)

	results := make([]perPlace, len(candidates))
	jobs := make(chan int, len(candidates))
	var wgr sync.WaitGroup

	for i := 1; i <= c.workers; i++ {
		wgr.Add(1)
		go c.worker(ctx, i, &wgr, jobs, candidates, results)
	}

	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)

	wgr.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("enrichment aborted: %w", err)
	}

	var details []models.PlaceDetails
	var reviews []models.Review
	for _, res := range results {
		if res.details == nil {
			continue
		}
		details = append(details, *res.details)
		reviews = append(reviews, res.reviews...)
	}

	c.log.InfoContext(ctx, "Enrichment finished",
		"places", len(details), "reviews", len(reviews), "skipped", len(candidates)-len(details))

	return details, reviews, nil
}

// worker processes candidate indices from the jobs channel, writing each
// result into its own slot.
func (c *Collector) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan int,
	candidates []models.Place,
	results []perPlace,
) {
	defer wg.Done()
	for job := range jobs {
		c.metrics.ActiveWorkers.Inc()

		candidate := candidates[job]
		c.log.DebugContext(ctx, "Fetching place details", "worker", idx, "place_id", candidate.PlaceID)

		start := time.Now()
		detail, err := c.fetchDetails(ctx, candidate.PlaceID)
		c.metrics.RequestSeconds.WithLabelValues("details").Observe(time.Since(start).Seconds())

		if err != nil {
			c.log.ErrorContext(ctx, "Failed to fetch place details",
				"worker", idx, "place_id", candidate.PlaceID, "error", err)
			c.metrics.APIErrors.Inc()
			c.metrics.ActiveWorkers.Dec()
			continue
		}

		results[job] = flatten(candidate, detail)
		c.metrics.ActiveWorkers.Dec()
	}
}

// fetchDetails performs one details request. Any status other than OK is
// an error carrying the upstream status and message.
func (c *Collector) fetchDetails(ctx context.Context, placeID string) (*detailResult, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("key", c.apiKey)

	var resp detailsResponse
	if err := c.client.GetJSON(ctx, c.cfg.DetailsURL, params, &resp); err != nil {
		return nil, fmt.Errorf("details request: %w", err)
	}

	if resp.Status != "OK" {
		return nil, &places.StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}
	if resp.Result == nil {
		return nil, &places.StatusError{Status: resp.Status, Message: "details payload missing result"}
	}

	return resp.Result, nil
}

// flatten turns one details payload into the export rows, falling back to
// the candidate's own fields where the details response is sparse.
func flatten(candidate models.Place, detail *detailResult) perPlace {
	name := detail.Name
	if name == "" {
		name = candidate.Name
	}
	address := detail.FormattedAddress
	if address == "" {
		address = candidate.Vicinity
	}

	zip := componentValue(detail.AddressComponents, "postal_code", false)
	det := &models.PlaceDetails{
		PlaceID:          candidate.PlaceID,
		Name:             name,
		FormattedAddress: address,
		City:             componentValue(detail.AddressComponents, "locality", false),
		State:            componentValue(detail.AddressComponents, "administrative_area_level_1", true),
		Zip:              zip,
		Country:          componentValue(detail.AddressComponents, "country", true),
		Rating:           detail.Rating,
		UserRatingsTotal: detail.UserRatingsTotal,
	}

	reviews := make([]models.Review, 0, len(detail.Reviews))
	for _, rev := range detail.Reviews {
		reviews = append(reviews, models.Review{
			PlaceID:      candidate.PlaceID,
			PlaceName:    name,
			Address:      address,
			Zip:          zip,
			AuthorName:   rev.AuthorName,
			Rating:       rev.Rating,
			Text:         rev.Text,
			Time:         rev.Time,
			RelativeTime: rev.RelativeTimeDescription,
			Language:     rev.Language,
		})
	}

	return perPlace{details: det, reviews: reviews}
}

// componentValue picks the long or short name of the first address
// component carrying the given type tag.
func componentValue(components []addrComponent, typeTag string, short bool) string {
	for _, comp := range components {
		if slices.Contains(comp.Types, typeTag) {
			if short {
				return comp.ShortName
			}
			return comp.LongName
		}
	}
	return ""
}
