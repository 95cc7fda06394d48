package weather

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/weather-gateway/internal/weather/openweather"
)

// iconByCondition maps a provider condition to a fallback icon code, applied
// only when the provider omits the icon field. Unmapped conditions use the
// rain icon.
var iconByCondition = map[string]string{
	"Clear":        "01d",
	"Clouds":       "03d",
	"Rain":         "10d",
	"Drizzle":      "09d",
	"Mist":         "50d",
	"Snow":         "13d",
	"Thunderstorm": "11d",
}

const defaultIcon = "10d"

// roundTemp rounds half away from zero, matching the values pinned in tests
// (15.7 rounds to 16, -2.5 rounds to -3).
func roundTemp(v float64) int {
	return int(math.Round(v))
}

// NormalizeCurrent reshapes a provider current-conditions payload into the
// canonical schema. Cached and Timestamp are left for the caller to stamp.
func NormalizeCurrent(p openweather.CurrentPayload) CurrentWeather {
	var cond openweather.ConditionPayload
	if len(p.Weather) > 0 {
		cond = p.Weather[0]
	}

	return CurrentWeather{
		Location: Location{
			Name:    p.Name,
			Country: p.Sys.Country,
			Coordinates: Coordinates{
				Lat: p.Coord.Lat,
				Lon: p.Coord.Lon,
			},
		},
		Weather: normalizeCondition(cond),
		Temperature: Temperature{
			Current:   roundTemp(p.Main.Temp),
			FeelsLike: roundTemp(p.Main.FeelsLike),
			Min:       roundTemp(p.Main.TempMin),
			Max:       roundTemp(p.Main.TempMax),
		},
		Humidity:   p.Main.Humidity,
		Pressure:   p.Main.Pressure,
		Wind: Wind{
			Speed:     p.Wind.Speed,
			Direction: p.Wind.Deg,
		},
		Visibility: p.Visibility,
		Sunrise:    time.Unix(p.Sys.Sunrise, 0).UTC().Format(time.RFC3339),
		Sunset:     time.Unix(p.Sys.Sunset, 0).UTC().Format(time.RFC3339),
		Timezone:   p.Timezone,
	}
}

// NormalizeForecast reshapes a provider forecast payload. Entries keep the
// provider's chronological ordering.
func NormalizeForecast(p openweather.ForecastPayload) Forecast {
	entries := make([]ForecastEntry, 0, len(p.List))
	for _, item := range p.List {
		var cond openweather.ConditionPayload
		if len(item.Weather) > 0 {
			cond = item.Weather[0]
		}

		entries = append(entries, ForecastEntry{
			Datetime: item.DtTxt,
			Temperature: Temperature{
				Current:   roundTemp(item.Main.Temp),
				FeelsLike: roundTemp(item.Main.FeelsLike),
				Min:       roundTemp(item.Main.TempMin),
				Max:       roundTemp(item.Main.TempMax),
			},
			Weather:  normalizeCondition(cond),
			Humidity: item.Main.Humidity,
			Wind: Wind{
				Speed:     item.Wind.Speed,
				Direction: item.Wind.Deg,
			},
			Pop: item.Pop,
		})
	}

	return Forecast{
		Location: Location{
			Name:    p.City.Name,
			Country: p.City.Country,
			Coordinates: Coordinates{
				Lat: p.City.Coord.Lat,
				Lon: p.City.Coord.Lon,
			},
		},
		Entries: entries,
	}
}

// NormalizeSuggestions reshapes geocoding matches, preserving provider order.
// A missing state becomes an empty string and is omitted from DisplayName.
func NormalizeSuggestions(results []openweather.GeoResult) []Suggestion {
	suggestions := make([]Suggestion, 0, len(results))
	for _, r := range results {
		display := fmt.Sprintf("%s, %s", r.Name, r.Country)
		if r.State != "" {
			display = fmt.Sprintf("%s, %s, %s", r.Name, r.State, r.Country)
		}

		suggestions = append(suggestions, Suggestion{
			Name:        r.Name,
			State:       r.State,
			Country:     r.Country,
			Lat:         r.Lat,
			Lon:         r.Lon,
			DisplayName: display,
		})
	}
	return suggestions
}

func normalizeCondition(c openweather.ConditionPayload) ConditionInfo {
	icon := c.Icon
	if icon == "" {
		icon = iconByCondition[c.Main]
		if icon == "" {
			icon = defaultIcon
		}
	}
	return ConditionInfo{
		Main:        c.Main,
		Description: c.Description,
		Icon:        icon,
	}
}
