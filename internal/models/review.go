package models

// PlaceDetails holds the enriched per-place fields returned by the
// upstream details endpoint.
type PlaceDetails struct {
	PlaceID          string  // PlaceID is the upstream identifier of the place.
	Name             string  // Name is the display name of the place.
	FormattedAddress string  // FormattedAddress is the full postal address.
	City             string  // City parsed from the address components.
	State            string  // State parsed from the address components (short form).
	Zip              string  // Zip is the postal code parsed from the address components.
	Country          string  // Country parsed from the address components (short form).
	Rating           float64 // Rating is the aggregate upstream rating.
	UserRatingsTotal int     // UserRatingsTotal is the number of ratings behind Rating.
}

// Review is a single public review of a place, flattened together with the
// place fields the export consumers need.
type Review struct {
	PlaceID      string  // PlaceID is the upstream identifier of the reviewed place.
	PlaceName    string  // PlaceName is the display name of the reviewed place.
	Address      string  // Address is the full postal address of the place.
	Zip          string  // Zip is the postal code of the place.
	AuthorName   string  // AuthorName is the review author's display name.
	Rating       float64 // Rating is the author's rating.
	Text         string  // Text is the review body.
	Time         int64   // Time is the review unix timestamp.
	RelativeTime string  // RelativeTime is the upstream human-readable age ("a month ago").
	Language     string  // Language is the review language code reported upstream.
}
