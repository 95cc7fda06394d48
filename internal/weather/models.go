package weather

// Units is the unit system requested by the caller.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location identifies the place a weather payload describes.
type Location struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// ConditionInfo is the high-level weather condition reported upstream.
type ConditionInfo struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Temperature holds rounded temperature readings in the requested unit system.
type Temperature struct {
	Current   int `json:"current"`
	FeelsLike int `json:"feels_like"`
	Min       int `json:"min"`
	Max       int `json:"max"`
}

// Wind holds wind speed and direction (degrees).
type Wind struct {
	Speed     float64 `json:"speed"`
	Direction int     `json:"direction"`
}

// CurrentWeather is the canonical current-conditions response.
// Cached and Timestamp are stamped per serve, not per fetch.
type CurrentWeather struct {
	Location    Location      `json:"location"`
	Weather     ConditionInfo `json:"weather"`
	Temperature Temperature   `json:"temperature"`
	Humidity    int           `json:"humidity"`
	Pressure    int           `json:"pressure"`
	Wind        Wind          `json:"wind"`
	Visibility  int           `json:"visibility"`
	Sunrise     string        `json:"sunrise"`
	Sunset      string        `json:"sunset"`
	Timezone    int           `json:"timezone"`
	Cached      bool          `json:"cached"`
	Timestamp   string        `json:"timestamp"`
}

// ForecastEntry is a single forecast slot, ordered chronologically.
type ForecastEntry struct {
	Datetime    string        `json:"datetime"`
	Temperature Temperature   `json:"temperature"`
	Weather     ConditionInfo `json:"weather"`
	Humidity    int           `json:"humidity"`
	Wind        Wind          `json:"wind"`
	Pop         float64       `json:"pop"` // probability of precipitation, 0..1
}

// Forecast is the canonical multi-slot forecast response.
type Forecast struct {
	Location  Location        `json:"location"`
	Entries   []ForecastEntry `json:"forecast"`
	Cached    bool            `json:"cached"`
	Timestamp string          `json:"timestamp"`
}

// Suggestion is a single city-autocomplete candidate.
// DisplayName is "{name}[, {state}], {country}"; the state segment is
// omitted when the geocoder reports none.
type Suggestion struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}
