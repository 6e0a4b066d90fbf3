package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/geo"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// oneLatDegreeM is the meridian length of one degree on the spherical
// model used by the package: EarthRadius * pi / 180.
const oneLatDegreeM = geo.EarthRadiusM * math.Pi / 180.0

func TestMileConversions(t *testing.T) {
	require.InEpsilon(t, 16093.44, geo.MilesToMeters(10), 1e-12)
	require.InEpsilon(t, 10, geo.MetersToMiles(16093.44), 1e-12)
	require.InEpsilon(t, 42.5, geo.MetersToMiles(geo.MilesToMeters(42.5)), 1e-12)
}

func TestHaversineM(t *testing.T) {
	plano := models.Coordinates{Latitude: 33.0198, Longitude: -96.6989}

	t.Run("zero for coincident points", func(t *testing.T) {
		assert.Zero(t, geo.HaversineM(plano, plano))
	})

	t.Run("symmetric", func(t *testing.T) {
		other := models.Coordinates{Latitude: 32.7767, Longitude: -96.797}
		require.InEpsilon(t, geo.HaversineM(plano, other), geo.HaversineM(other, plano), 1e-12)
	})

	t.Run("one degree along the equator", func(t *testing.T) {
		a := models.Coordinates{Latitude: 0, Longitude: 0}
		b := models.Coordinates{Latitude: 0, Longitude: 1}
		require.InDelta(t, oneLatDegreeM, geo.HaversineM(a, b), 0.001)
	})

	t.Run("monotonic with angular separation", func(t *testing.T) {
		near := models.Coordinates{Latitude: plano.Latitude + 0.1, Longitude: plano.Longitude}
		far := models.Coordinates{Latitude: plano.Latitude + 0.2, Longitude: plano.Longitude}
		assert.Less(t, geo.HaversineM(plano, near), geo.HaversineM(plano, far))
	})
}

func TestDegreeConversions(t *testing.T) {
	t.Run("latitude", func(t *testing.T) {
		require.InEpsilon(t, 1.0, geo.MetersToLatDegrees(oneLatDegreeM), 1e-12)
	})

	t.Run("longitude shrinks with latitude", func(t *testing.T) {
		atEquator := geo.MetersToLonDegrees(10000, 0)
		at60 := geo.MetersToLonDegrees(10000, 60)
		require.InEpsilon(t, 2.0, at60/atEquator, 1e-9)
	})

	t.Run("does not blow up at the poles", func(t *testing.T) {
		deg := geo.MetersToLonDegrees(10000, 90)
		assert.False(t, math.IsInf(deg, 0))
		assert.False(t, math.IsNaN(deg))
		assert.Positive(t, deg)
	})
}

func TestGenerateTileCenters(t *testing.T) {
	plano := models.Coordinates{Latitude: 33.0198, Longitude: -96.6989}

	t.Run("single tile when radius fits", func(t *testing.T) {
		centers := geo.GenerateTileCenters(plano, geo.MilesToMeters(10), 50000)

		require.Len(t, centers, 1)
		assert.Equal(t, plano, centers[0])
	})

	t.Run("single tile on degenerate radius", func(t *testing.T) {
		centers := geo.GenerateTileCenters(plano, 0, 50000)

		require.Len(t, centers, 1)
		assert.Equal(t, plano, centers[0])

		centers = geo.GenerateTileCenters(plano, -5, 50000)
		require.Len(t, centers, 1)
	})

	t.Run("large radius produces a lattice inside the bounding box", func(t *testing.T) {
		radiusM := geo.MilesToMeters(100)
		tileRadiusM := 50000.0
		centers := geo.GenerateTileCenters(plano, radiusM, tileRadiusM)

		require.Greater(t, len(centers), 1)

		latExtent := geo.MetersToLatDegrees(radiusM)
		lonExtent := geo.MetersToLonDegrees(radiusM, plano.Latitude)
		for _, c := range centers {
			assert.InDelta(t, plano.Latitude, c.Latitude, latExtent+1e-9)
			assert.InDelta(t, plano.Longitude, c.Longitude, lonExtent+1e-9)
		}
	})

	t.Run("exact center is always present", func(t *testing.T) {
		centers := geo.GenerateTileCenters(plano, geo.MilesToMeters(100), 50000)

		found := false
		for _, c := range centers {
			if c == plano {
				found = true
				break
			}
		}
		assert.True(t, found, "exact search center missing from tile set")
	})

	t.Run("no near-duplicate centers survive", func(t *testing.T) {
		centers := geo.GenerateTileCenters(plano, geo.MilesToMeters(150), 50000)

		type key struct{ lat, lon float64 }
		seen := make(map[key]struct{}, len(centers))
		for _, c := range centers {
			k := key{
				lat: math.Round(c.Latitude*1e5) / 1e5,
				lon: math.Round(c.Longitude*1e5) / 1e5,
			}
			_, dup := seen[k]
			require.False(t, dup, "duplicate tile center at %v", c)
			seen[k] = struct{}{}
		}
	})
}
