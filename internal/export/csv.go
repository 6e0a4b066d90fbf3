// Package export serializes pipeline results into flat CSV artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/insights"
	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// Export artifact file names, matching what downstream dashboards expect.
const (
	PlacesFile  = "places.csv"
	ReviewsFile = "reviews.csv"
	TableauFile = "tableau_reviews.csv"
)

// WritePlaces writes the candidate places as CSV. Distance columns are
// empty for unfiltered results.
func WritePlaces(w io.Writer, list []models.Place) error {
	cw := csv.NewWriter(w)

	header := []string{
		"place_id", "name", "vicinity", "lat", "lon", "types", "distance_m", "distance_miles",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write places header: %w", err)
	}

	for _, p := range list {
		record := []string{
			p.PlaceID,
			p.Name,
			p.Vicinity,
			formatFloat(p.Latitude),
			formatFloat(p.Longitude),
			p.Types,
			formatOptFloat(p.DistanceMeters),
			formatOptFloat(p.DistanceMiles),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write place record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush places csv: %w", err)
	}

	return nil
}

// WriteReviews writes the flat review rows as CSV.
func WriteReviews(w io.Writer, list []models.Review) error {
	cw := csv.NewWriter(w)

	header := []string{
		"place_id", "place_name", "address", "zip",
		"author_name", "rating", "text", "time", "relative_time", "language",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write reviews header: %w", err)
	}

	for _, r := range list {
		record := []string{
			r.PlaceID,
			r.PlaceName,
			r.Address,
			r.Zip,
			r.AuthorName,
			formatFloat(r.Rating),
			r.Text,
			strconv.FormatInt(r.Time, 10),
			r.RelativeTime,
			r.Language,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write review record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush reviews csv: %w", err)
	}

	return nil
}

// WriteInsights writes the analytics-ready review rows as CSV.
func WriteInsights(w io.Writer, rows []insights.Row) error {
	cw := csv.NewWriter(w)

	header := []string{
		"place_id", "place_name", "address", "zip",
		"author_name", "rating", "text", "time", "relative_time", "language",
		"review_year", "review_month", "rating_band", "word_count",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write insights header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.PlaceID,
			row.PlaceName,
			row.Address,
			row.Zip,
			row.AuthorName,
			formatFloat(row.Rating),
			row.Text,
			strconv.FormatInt(row.Time, 10),
			row.RelativeTime,
			row.Language,
			strconv.Itoa(row.ReviewYear),
			strconv.Itoa(row.ReviewMonth),
			row.RatingBand,
			strconv.Itoa(row.WordCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write insight record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush insights csv: %w", err)
	}

	return nil
}

// SaveAll writes the three CSV artifacts into dir, creating it when
// needed, and returns the written file paths.
func SaveAll(
	dir string,
	placeList []models.Place,
	reviewList []models.Review,
	rows []insights.Row,
) ([]string, error) {
	const dirPerm = 0o755
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	written := make([]string, 0, 3)

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{PlacesFile, func(w io.Writer) error { return WritePlaces(w, placeList) }},
		{ReviewsFile, func(w io.Writer) error { return WriteReviews(w, reviewList) }},
		{TableauFile, func(w io.Writer) error { return WriteInsights(w, rows) }},
	}

	for _, art := range writers {
		path := filepath.Join(dir, art.name)
		file, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("create %s: %w", art.name, err)
		}
		if err = art.write(file); err != nil {
			file.Close()
			return written, err
		}
		if err = file.Close(); err != nil {
			return written, fmt.Errorf("close %s: %w", art.name, err)
		}
		written = append(written, path)
	}

	return written, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
