package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves addresses through the Google Maps Geocoding
// API. It is used to turn the user's free-form search location into the
// coordinate the tile planner works from.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given API
// client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Resolve geocodes the provided address and returns its coordinates along
// with the normalized address fields parsed from the first result's
// address components. An empty upstream response yields ErrEmptyResponse.
func (gp *GoogleProvider) Resolve(ctx context.Context, address string) (*ResolvedAddress, error) {
	gp.log.DebugContext(ctx, "Resolving address using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	top := results[0]
	resolved := &ResolvedAddress{
		Coordinates: models.Coordinates{
			Latitude:  top.Geometry.Location.Lat,
			Longitude: top.Geometry.Location.Lng,
		},
		FormattedAddress: top.FormattedAddress,
	}
	parseComponents(top.AddressComponents, resolved)

	return resolved, nil
}

// parseComponents fills the city/state/zip/country fields from the
// geocoding result's address components.
func parseComponents(components []maps.AddressComponent, dst *ResolvedAddress) {
	for _, comp := range components {
		if slices.Contains(comp.Types, "locality") {
			dst.City = comp.LongName
		}
		if slices.Contains(comp.Types, "administrative_area_level_1") {
			dst.State = comp.ShortName
		}
		if slices.Contains(comp.Types, "postal_code") {
			dst.Zip = comp.LongName
		}
		if slices.Contains(comp.Types, "country") {
			dst.Country = comp.ShortName
		}
	}
}
