package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// NominatimProvider implements the Provider interface using
// OpenStreetMap's Nominatim API. It is the keyless fallback for address
// resolution (1 request/second fair-use limit).
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResult represents one entry of the Nominatim JSON response.
type nominatimResult struct {
	Lat         string `json:"lat"` // Latitude as string
	Lon         string `json:"lon"` // Longitude as string
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Postcode    string `json:"postcode"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

const nominatimUserAgent = "Location-Intelligence-Review-Analytics/1.0 " +
	"(https://github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform)"

// NewNominatimProvider creates a new Nominatim address-resolution
// provider using the public API endpoint.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client:    &http.Client{Timeout: timeout * time.Second},
		baseURL:   nominatimBaseURL,
		log:       log,
		userAgent: nominatimUserAgent,
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   nominatimBaseURL,
		log:       log,
		userAgent: nominatimUserAgent,
	}
}

// Resolve converts free-form address text to a resolved address using the
// Nominatim API. Only the top-ranked result is used; its address details
// fill the normalized city/state/zip fields where present.
func (np *NominatimProvider) Resolve(ctx context.Context, address string) (*ResolvedAddress, error) {
	np.log.DebugContext(ctx, "Resolving address using Nominatim", "address", address)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")          // Only need the top result
	query.Set("addressdetails", "1") // Include the address breakdown for city/state/zip
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Required per Nominatim usage policy:
	// https://operations.osmfoundation.org/policies/nominatim/
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}
	top := results[0]

	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, top.Lat)
	}
	lon, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, top.Lon)
	}

	city := top.Address.City
	if city == "" {
		city = top.Address.Town
	}
	if city == "" {
		city = top.Address.Village
	}

	return &ResolvedAddress{
		Coordinates:      models.Coordinates{Latitude: lat, Longitude: lon},
		FormattedAddress: top.DisplayName,
		City:             city,
		State:            top.Address.State,
		Zip:              top.Address.Postcode,
		Country:          strings.ToUpper(top.Address.CountryCode),
	}, nil
}
