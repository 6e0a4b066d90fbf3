package places

import "fmt"

// Upstream payload statuses treated as success. Anything else aborts the
// collection that observed it.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// StatusError is returned when the upstream payload carries a status
// other than OK or ZERO_RESULTS. It keeps the upstream status code and
// message so callers can surface them verbatim.
type StatusError struct {
	Status  string // Status is the upstream status code (e.g. OVER_QUERY_LIMIT).
	Message string // Message is the upstream-provided error message, may be empty.
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream error: status=%s, msg=%s", e.Status, e.Message)
}

// checkStatus maps a payload status to a *StatusError when it is neither
// OK nor ZERO_RESULTS.
func checkStatus(status, message string) error {
	if status != statusOK && status != statusZeroResults {
		return &StatusError{Status: status, Message: message}
	}
	return nil
}

// searchResponse is the subset of the upstream search payload the
// collectors consume. Both the nearby and the text search endpoints share
// this shape.
type searchResponse struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message"`
	NextPageToken string        `json:"next_page_token"`
	Results       []placeResult `json:"results"`
}

// placeResult is one raw upstream record. Geometry and its location are
// pointers so records with absent coordinates can be detected and skipped
// rather than silently read as (0, 0).
type placeResult struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	Vicinity         string    `json:"vicinity"`
	FormattedAddress string    `json:"formatted_address"`
	Geometry         *geometry `json:"geometry"`
	Types            []string  `json:"types"`
}

type geometry struct {
	Location *latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// addressText prefers the short vicinity and falls back to the formatted
// address the text search endpoint returns instead.
func (r placeResult) addressText() string {
	if r.Vicinity != "" {
		return r.Vicinity
	}
	return r.FormattedAddress
}
