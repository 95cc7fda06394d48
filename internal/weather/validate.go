package weather

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// City names allow letters, whitespace, comma, period and hyphen only.
var cityNameRe = regexp.MustCompile(`^[a-zA-Z\s,.\-]+$`)

func init() {
	_ = validate.RegisterValidation("cityname", func(fl validator.FieldLevel) bool {
		return cityNameRe.MatchString(fl.Field().String())
	})
}

type cityParams struct {
	City  string `validate:"required,max=100,cityname"`
	Units string `validate:"oneof=metric imperial"`
}

type coordParams struct {
	Lat   float64 `validate:"gte=-90,lte=90"`
	Lon   float64 `validate:"gte=-180,lte=180"`
	Units string  `validate:"oneof=metric imperial"`
}

const (
	defaultSuggestionLimit = 5
	maxSuggestionLimit     = 10
)

// ValidateCity normalizes a city-name request. Units defaults to metric.
func ValidateCity(city, units string) (Query, error) {
	city = strings.TrimSpace(city)
	u, err := normalizeUnits(units)
	if err != nil {
		return Query{}, err
	}

	if err := validate.Struct(cityParams{City: city, Units: string(u)}); err != nil {
		return Query{}, cityValidationError(err)
	}

	return Query{Kind: QueryCity, City: city, Units: u}, nil
}

// ValidateCoordinates normalizes a lat/lon request. Both values must parse
// as finite numbers within range.
func ValidateCoordinates(lat, lon, units string) (Query, error) {
	u, err := normalizeUnits(units)
	if err != nil {
		return Query{}, err
	}

	latF, err := parseFinite(lat)
	if err != nil {
		return Query{}, ErrInvalidInput(FieldError{Field: "lat", Reason: "latitude must be a number"})
	}
	lonF, err := parseFinite(lon)
	if err != nil {
		return Query{}, ErrInvalidInput(FieldError{Field: "lon", Reason: "longitude must be a number"})
	}

	if err := validate.Struct(coordParams{Lat: latF, Lon: lonF, Units: string(u)}); err != nil {
		return Query{}, coordValidationError(err)
	}

	return Query{Kind: QueryCoordinates, Lat: latF, Lon: lonF, Units: u}, nil
}

// ValidateSuggestions normalizes an autocomplete request. Queries shorter
// than two characters are not an error: the second return value reports
// that the request should short-circuit to an empty suggestion list.
func ValidateSuggestions(q, limit string) (Query, bool) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return Query{}, true
	}

	n := defaultSuggestionLimit
	if limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil {
			n = parsed
		}
	}
	if n < 1 {
		n = 1
	}
	if n > maxSuggestionLimit {
		n = maxSuggestionLimit
	}

	return Query{Kind: QuerySuggestions, Partial: q, Limit: n}, false
}

func normalizeUnits(units string) (Units, error) {
	if units == "" {
		return UnitsMetric, nil
	}
	switch Units(units) {
	case UnitsMetric, UnitsImperial:
		return Units(units), nil
	default:
		return "", ErrInvalidInput(FieldError{Field: "units", Reason: "units must be metric or imperial"})
	}
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	// ParseFloat accepts "Inf" and "NaN" spellings; both are out of range here.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

func cityValidationError(err error) *Error {
	var details []FieldError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Field() {
			case "City":
				switch fe.Tag() {
				case "required", "max":
					details = append(details, FieldError{Field: "city", Reason: "city name must be between 1 and 100 characters"})
				default:
					details = append(details, FieldError{Field: "city", Reason: "city name contains invalid characters"})
				}
			case "Units":
				details = append(details, FieldError{Field: "units", Reason: "units must be metric or imperial"})
			}
		}
	}
	return ErrInvalidInput(details...)
}

func coordValidationError(err error) *Error {
	var details []FieldError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Lat":
				details = append(details, FieldError{Field: "lat", Reason: "latitude must be between -90 and 90"})
			case "Lon":
				details = append(details, FieldError{Field: "lon", Reason: "longitude must be between -180 and 180"})
			case "Units":
				details = append(details, FieldError{Field: "units", Reason: "units must be metric or imperial"})
			}
		}
	}
	return ErrInvalidInput(details...)
}
