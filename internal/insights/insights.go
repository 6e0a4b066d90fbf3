// Package insights derives analytics-ready columns from flat review rows
// so the CSV export can be consumed by dashboarding tools directly.
package insights

import (
	"strings"
	"time"

	"github.com/tharareddy1407/Location-Intelligence-Review-Analytics-Platform/internal/models"
)

// Rating band labels.
const (
	BandPositive = "positive"
	BandNeutral  = "neutral"
	BandNegative = "negative"
)

// Row is one review flattened together with its derived columns.
type Row struct {
	models.Review        // the underlying review fields
	ReviewYear    int    // ReviewYear is the calendar year of the review (UTC).
	ReviewMonth   int    // ReviewMonth is the calendar month of the review (UTC), 1-12.
	RatingBand    string // RatingBand buckets the rating: positive (>=4), neutral (=3), negative (<=2).
	WordCount     int    // WordCount is the number of whitespace-separated words in the review text.
}

// Enrich derives the analytics columns for every review, preserving input
// order. Reviews without a timestamp keep zero year/month.
func Enrich(reviews []models.Review) []Row {
	rows := make([]Row, 0, len(reviews))
	for _, rev := range reviews {
		row := Row{
			Review:     rev,
			RatingBand: band(rev.Rating),
			WordCount:  len(strings.Fields(rev.Text)),
		}
		if rev.Time > 0 {
			ts := time.Unix(rev.Time, 0).UTC()
			row.ReviewYear = ts.Year()
			row.ReviewMonth = int(ts.Month())
		}
		rows = append(rows, row)
	}

	return rows
}

func band(rating float64) string {
	switch {
	case rating >= 4:
		return BandPositive
	case rating >= 3:
		return BandNeutral
	default:
		return BandNegative
	}
}
