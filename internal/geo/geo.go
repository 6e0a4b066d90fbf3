// Package geo provides the spherical-earth math used by the search
// pipeline: great-circle distances, meters-to-degrees conversions and the
// tile lattice that covers a large search radius with smaller sub-queries.
package geo

import (
	"math"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371000.0

// metersPerMile is the exact international mile in meters.
const metersPerMile = 1609.344

// minCosLat guards the longitude conversion against a vanishing
// cos(latitude) near the poles.
const minCosLat = 1e-6

// tileOverlapFactor spaces the tile lattice at 1.5 tile radii so adjacent
// tiles overlap and points near a tile boundary are not missed by any one
// bounded query.
const tileOverlapFactor = 1.5

// MilesToMeters converts a distance in miles to meters.
func MilesToMeters(mi float64) float64 {
	return mi * metersPerMile
}

// MetersToMiles converts a distance in meters to miles.
func MetersToMiles(m float64) float64 {
	return m / metersPerMile
}

// HaversineM returns the great-circle distance between two points in
// meters, using the haversine formula on a spherical Earth. The result is
// symmetric in its arguments and zero for coincident points.
func HaversineM(a, b models.Coordinates) float64 {
	phi1 := a.Latitude * math.Pi / 180.0
	phi2 := b.Latitude * math.Pi / 180.0
	dphi := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dlambda := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Pow(math.Sin(dphi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dlambda/2), 2)

	return 2 * EarthRadiusM * math.Asin(math.Sqrt(h))
}

// MetersToLatDegrees converts a north-south displacement in meters to
// degrees of latitude. Small-angle approximation, valid for displacements
// small relative to the Earth's radius.
func MetersToLatDegrees(m float64) float64 {
	return (m / EarthRadiusM) * (180.0 / math.Pi)
}

// MetersToLonDegrees converts an east-west displacement in meters to
// degrees of longitude at the given latitude. cos(latitude) is clamped to
// a small positive floor so the conversion never divides by zero near the
// poles.
func MetersToLonDegrees(m float64, atLatDeg float64) float64 {
	cosLat := math.Cos(atLatDeg * math.Pi / 180.0)
	return (m / (EarthRadiusM * math.Max(minCosLat, cosLat))) * (180.0 / math.Pi)
}

// GenerateTileCenters covers a circle of radiusM around center with a set
// of tile centers, each intended as the center of one upstream query
// bounded by tileRadiusM.
//
// When radiusM fits inside a single tile (or either radius is
// degenerate), the center alone is returned. Otherwise a square lattice
// spaced at 1.5 tile radii is walked over the bounding box of the
// requested circle and lattice points whose flat-earth displacement lies
// within radiusM are kept. The exact center is always included, and
// near-duplicate points produced by floating-point walk accumulation are
// collapsed by rounding to 5 decimal places (~1.1 m). No ordering of the
// result is guaranteed.
func GenerateTileCenters(center models.Coordinates, radiusM, tileRadiusM float64) []models.Coordinates {
	if radiusM <= 0 || tileRadiusM <= 0 || radiusM <= tileRadiusM {
		return []models.Coordinates{center}
	}

	stepM := tileRadiusM * tileOverlapFactor
	dlat := MetersToLatDegrees(stepM)
	dlon := MetersToLonDegrees(stepM, center.Latitude)

	latExtent := MetersToLatDegrees(radiusM)
	lonExtent := MetersToLonDegrees(radiusM, center.Latitude)

	latMin, latMax := center.Latitude-latExtent, center.Latitude+latExtent
	lonMin, lonMax := center.Longitude-lonExtent, center.Longitude+lonExtent

	r2 := radiusM * radiusM
	cosLat := math.Cos(center.Latitude * math.Pi / 180.0)

	var centers []models.Coordinates
	for curLat := latMin; curLat <= latMax; curLat += dlat {
		for curLon := lonMin; curLon <= lonMax; curLon += dlon {
			// Keep only lattice points inside the circle (equirectangular
			// approximation, fine at sub-100km scale).
			dy := (curLat - center.Latitude) * (math.Pi / 180.0) * EarthRadiusM
			dx := (curLon - center.Longitude) * (math.Pi / 180.0) * EarthRadiusM * cosLat
			if dx*dx+dy*dy <= r2 {
				centers = append(centers, models.Coordinates{Latitude: curLat, Longitude: curLon})
			}
		}
	}

	// The lattice walk does not necessarily land on the exact center.
	centers = append(centers, center)

	return dedupeRounded(centers)
}

// dedupeRounded collapses coordinates that agree to 5 decimal places,
// keeping the last occurrence of each.
func dedupeRounded(coords []models.Coordinates) []models.Coordinates {
	type key struct{ lat, lon float64 }

	uniq := make(map[key]int, len(coords))
	out := make([]models.Coordinates, 0, len(coords))
	for _, c := range coords {
		k := key{lat: round5(c.Latitude), lon: round5(c.Longitude)}
		if idx, ok := uniq[k]; ok {
			out[idx] = c
			continue
		}
		uniq[k] = len(out)
		out = append(out, c)
	}

	return out
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
