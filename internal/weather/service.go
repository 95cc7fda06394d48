package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/i474232898/weather-gateway/internal/weather/openweather"
)

// Upstream abstracts the weather/geocoding provider.
type Upstream interface {
	CurrentByCity(ctx context.Context, city, units string) (openweather.CurrentPayload, error)
	CurrentByCoords(ctx context.Context, lat, lon float64, units string) (openweather.CurrentPayload, error)
	Forecast(ctx context.Context, city, units string) (openweather.ForecastPayload, error)
	SearchCities(ctx context.Context, q string, limit int) ([]openweather.GeoResult, error)
}

// Cache is the contract the TTL store must satisfy. Values are serialized
// bytes so cached entries are never shared by reference with callers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
}

// TTLs configures per-entry-kind cache lifetimes.
type TTLs struct {
	Weather    time.Duration // current conditions and forecasts
	Suggestion time.Duration // geocoding suggestions change far less often
}

// DefaultTTLs returns the stock cache lifetimes: 5 minutes for weather
// data, 1 hour for suggestions.
func DefaultTTLs() TTLs {
	return TTLs{
		Weather:    5 * time.Minute,
		Suggestion: time.Hour,
	}
}

// Service is the gateway core: it answers normalized queries from the cache
// when possible and otherwise calls upstream, normalizes the payload, and
// caches the result. Concurrent misses for the same key are coalesced into
// a single upstream call.
type Service struct {
	cache    Cache
	upstream Upstream
	ttls     TTLs
	sf       singleflight.Group
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(cache Cache, upstream Upstream, ttls TTLs) *Service {
	return &Service{
		cache:    cache,
		upstream: upstream,
		ttls:     ttls,
		now:      time.Now,
	}
}

// Current returns current conditions for a city or coordinate query.
func (s *Service) Current(ctx context.Context, q Query) (CurrentWeather, error) {
	key := "weather_" + q.Key()

	raw, cached, err := s.lookup(ctx, key, s.ttls.Weather, func() (any, error) {
		var (
			payload  openweather.CurrentPayload
			fetchErr error
		)
		switch q.Kind {
		case QueryCoordinates:
			payload, fetchErr = s.upstream.CurrentByCoords(ctx, q.Lat, q.Lon, string(q.Units))
		default:
			payload, fetchErr = s.upstream.CurrentByCity(ctx, q.City, string(q.Units))
		}
		if fetchErr != nil {
			return nil, fetchErr
		}
		return NormalizeCurrent(payload), nil
	})
	if err != nil {
		return CurrentWeather{}, err
	}

	var result CurrentWeather
	if err := json.Unmarshal(raw, &result); err != nil {
		return CurrentWeather{}, &Error{Kind: KindInternal, Message: "internal server error", Err: err}
	}
	result.Cached = cached
	result.Timestamp = s.now().UTC().Format(time.RFC3339)
	return result, nil
}

// GetForecast returns the multi-slot forecast for a city query.
func (s *Service) GetForecast(ctx context.Context, q Query) (Forecast, error) {
	key := "forecast_" + q.Key()

	raw, cached, err := s.lookup(ctx, key, s.ttls.Weather, func() (any, error) {
		payload, fetchErr := s.upstream.Forecast(ctx, q.City, string(q.Units))
		if fetchErr != nil {
			return nil, fetchErr
		}
		return NormalizeForecast(payload), nil
	})
	if err != nil {
		return Forecast{}, err
	}

	var result Forecast
	if err := json.Unmarshal(raw, &result); err != nil {
		return Forecast{}, &Error{Kind: KindInternal, Message: "internal server error", Err: err}
	}
	result.Cached = cached
	result.Timestamp = s.now().UTC().Format(time.RFC3339)
	return result, nil
}

// Suggestions returns city-autocomplete candidates for a partial name.
// Suggestions are served as a plain array without the cached/timestamp
// envelope.
func (s *Service) Suggestions(ctx context.Context, q Query) ([]Suggestion, error) {
	key := "suggestions_" + q.Key()

	raw, _, err := s.lookup(ctx, key, s.ttls.Suggestion, func() (any, error) {
		results, fetchErr := s.upstream.SearchCities(ctx, q.Partial, q.Limit)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return NormalizeSuggestions(results), nil
	})
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal server error", Err: err}
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}

// lookup consults the cache and on a miss runs fetch exactly once per key
// across concurrent callers. It returns the serialized value and whether it
// came from the cache.
func (s *Service) lookup(ctx context.Context, key string, ttl time.Duration, fetch func() (any, error)) ([]byte, bool, error) {
	if raw, ok := s.cache.Get(key); ok {
		return raw, true, nil
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		// A concurrent caller may have populated the cache while we
		// waited on the flight group.
		if raw, ok := s.cache.Get(key); ok {
			return raw, nil
		}

		value, fetchErr := fetch()
		if fetchErr != nil {
			return nil, fetchErr
		}

		raw, marshalErr := json.Marshal(value)
		if marshalErr != nil {
			return nil, marshalErr
		}
		s.cache.Set(key, raw, ttl)
		return raw, nil
	})
	if err != nil {
		return nil, false, mapUpstreamError(key, err)
	}

	raw, ok := result.([]byte)
	if !ok {
		return nil, false, &Error{Kind: KindInternal, Message: "internal server error"}
	}
	return raw, false, nil
}

// mapUpstreamError converts upstream failures into the gateway taxonomy.
// Diagnostic detail (status code, body) is logged here and never surfaced
// to callers.
func mapUpstreamError(key string, err error) *Error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}

	var statusErr *openweather.StatusError
	if errors.As(err, &statusErr) {
		log.Printf("upstream error for %s: status=%d body=%q", key, statusErr.Code, statusErr.Body)
		switch statusErr.Code {
		case 404:
			return &Error{
				Kind:    KindNotFound,
				Message: "Please check the city name and try again",
				Err:     statusErr,
			}
		case 401:
			return &Error{
				Kind:    KindUpstreamMisconfigured,
				Message: "Weather service temporarily unavailable",
				Err:     statusErr,
			}
		default:
			return &Error{
				Kind:    KindUpstreamError,
				Message: "Please try again later",
				Err:     statusErr,
			}
		}
	}

	if errors.Is(err, openweather.ErrNoAPIKey) {
		log.Printf("upstream call for %s rejected: %v", key, err)
		return &Error{
			Kind:    KindUpstreamMisconfigured,
			Message: "Weather service temporarily unavailable",
			Err:     err,
		}
	}

	log.Printf("upstream call for %s failed: %v", key, err)
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: "Please try again later",
		Err:     err,
	}
}
