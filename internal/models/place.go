package models

// Place is a deduplicated candidate place emitted by a collector.
//
// DistanceMeters and DistanceMiles are nil until a radius filter has been
// applied; after filtering they carry the exact great-circle distance from
// the search center.
type Place struct {
	PlaceID        string   // PlaceID is the opaque unique identifier assigned by the upstream catalog.
	Name           string   // Name is the display name of the place.
	Vicinity       string   // Vicinity is the short address or formatted address text.
	Latitude       float64  // Latitude of the place.
	Longitude      float64  // Longitude of the place.
	Types          string   // Types is the comma-joined list of upstream category tags.
	DistanceMeters *float64 // DistanceMeters is the distance from the search center, nil if unfiltered.
	DistanceMiles  *float64 // DistanceMiles is DistanceMeters converted to miles, nil if unfiltered.
}
