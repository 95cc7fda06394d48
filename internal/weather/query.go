package weather

import (
	"fmt"
	"strings"
)

// QueryKind discriminates the three normalized request shapes.
type QueryKind string

const (
	QueryCity        QueryKind = "city"
	QueryCoordinates QueryKind = "coordinates"
	QuerySuggestions QueryKind = "suggestions"
)

// Query is a validated, normalized request. It is immutable once built
// by the validator; only the fields relevant to Kind are populated.
type Query struct {
	Kind QueryKind

	City  string
	Lat   float64
	Lon   float64
	Units Units

	Partial string
	Limit   int
}

// Key returns the canonical cache-key suffix for this query. It is a pure
// function of the query's fields: structurally equal queries always produce
// equal keys. Callers prefix it with the operation name (weather/forecast/
// suggestions) so the same location does not collide across endpoints.
func (q Query) Key() string {
	switch q.Kind {
	case QueryCoordinates:
		return fmt.Sprintf("coord_%.4f_%.4f_%s", q.Lat, q.Lon, q.Units)
	case QuerySuggestions:
		return fmt.Sprintf("%s_%d", strings.ToLower(q.Partial), q.Limit)
	default:
		return fmt.Sprintf("%s_%s", strings.ToLower(q.City), q.Units)
	}
}
