package weather

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-gateway/internal/store"
	"github.com/i474232898/weather-gateway/internal/weather/openweather"
)

// stubUpstream counts calls and serves canned payloads.
type stubUpstream struct {
	currentCalls  int64
	forecastCalls int64
	searchCalls   int64

	delay time.Duration
	err   error
}

func (s *stubUpstream) CurrentByCity(ctx context.Context, city, units string) (openweather.CurrentPayload, error) {
	atomic.AddInt64(&s.currentCalls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return openweather.CurrentPayload{}, s.err
	}
	p := currentPayload()
	p.Name = city
	return p, nil
}

func (s *stubUpstream) CurrentByCoords(ctx context.Context, lat, lon float64, units string) (openweather.CurrentPayload, error) {
	atomic.AddInt64(&s.currentCalls, 1)
	if s.err != nil {
		return openweather.CurrentPayload{}, s.err
	}
	return currentPayload(), nil
}

func (s *stubUpstream) Forecast(ctx context.Context, city, units string) (openweather.ForecastPayload, error) {
	atomic.AddInt64(&s.forecastCalls, 1)
	if s.err != nil {
		return openweather.ForecastPayload{}, s.err
	}
	var p openweather.ForecastPayload
	p.City.Name = city
	p.List = []openweather.ForecastItemPayload{
		{DtTxt: "2024-01-01 00:00:00", Main: openweather.MainPayload{Temp: 4.5}},
	}
	return p, nil
}

func (s *stubUpstream) SearchCities(ctx context.Context, q string, limit int) ([]openweather.GeoResult, error) {
	atomic.AddInt64(&s.searchCalls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return []openweather.GeoResult{
		{Name: "London", Country: "GB", Lat: 51.5, Lon: -0.12},
	}, nil
}

func newTestService(upstream Upstream) *Service {
	return NewService(store.NewMemoryStore(100), upstream, DefaultTTLs())
}

func TestCurrentCachesSecondCall(t *testing.T) {
	upstream := &stubUpstream{}
	svc := newTestService(upstream)
	q := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}

	first, err := svc.Current(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Fatal("first call should not be cached")
	}
	if first.Temperature.Current != 16 {
		t.Fatalf("temperature = %d, want 16", first.Temperature.Current)
	}

	second, err := svc.Current(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatal("second identical call within TTL should be cached")
	}
	if got := atomic.LoadInt64(&upstream.currentCalls); got != 1 {
		t.Fatalf("upstream called %d times, want 1", got)
	}
}

func TestCurrentNotFound(t *testing.T) {
	upstream := &stubUpstream{err: &openweather.StatusError{Code: 404, Body: `{"cod":"404"}`}}
	svc := newTestService(upstream)
	q := Query{Kind: QueryCity, City: "Nonexistentville", Units: UnitsMetric}

	_, err := svc.Current(context.Background(), q)
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Kind != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if gwErr.Label() != "City not found" {
		t.Fatalf("label = %q, want %q", gwErr.Label(), "City not found")
	}
}

func TestCurrentUpstreamMisconfigured(t *testing.T) {
	upstream := &stubUpstream{err: &openweather.StatusError{Code: 401, Body: "Invalid API key"}}
	svc := newTestService(upstream)

	_, err := svc.Current(context.Background(), Query{Kind: QueryCity, City: "London", Units: UnitsMetric})
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Kind != KindUpstreamMisconfigured {
		t.Fatalf("expected UpstreamMisconfigured, got %v", err)
	}
	// Credential detail stays internal.
	if gwErr.Message != "Weather service temporarily unavailable" {
		t.Fatalf("message leaks detail: %q", gwErr.Message)
	}
}

func TestCurrentUpstreamUnavailable(t *testing.T) {
	upstream := &stubUpstream{err: openweather.ErrUnavailable}
	svc := newTestService(upstream)

	_, err := svc.Current(context.Background(), Query{Kind: QueryCity, City: "London", Units: UnitsMetric})
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Kind != KindUpstreamUnavailable {
		t.Fatalf("expected UpstreamUnavailable, got %v", err)
	}
}

func TestFailedCallsAreNotCached(t *testing.T) {
	upstream := &stubUpstream{err: openweather.ErrUnavailable}
	svc := newTestService(upstream)
	q := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}

	if _, err := svc.Current(context.Background(), q); err == nil {
		t.Fatal("expected error")
	}

	upstream.err = nil
	result, err := svc.Current(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error after upstream recovered: %v", err)
	}
	if result.Cached {
		t.Fatal("failure must not populate the cache")
	}
}

func TestConcurrentMissesCoalesce(t *testing.T) {
	upstream := &stubUpstream{delay: 30 * time.Millisecond}
	svc := newTestService(upstream)
	q := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Current(context.Background(), q); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&upstream.currentCalls); got != 1 {
		t.Fatalf("upstream called %d times for one key, want 1", got)
	}
}

func TestForecastCachesIndependentlyOfCurrent(t *testing.T) {
	upstream := &stubUpstream{}
	svc := newTestService(upstream)
	q := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}

	if _, err := svc.Current(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	forecast, err := svc.GetForecast(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecast.Cached {
		t.Fatal("forecast should miss despite a cached current entry for the same city")
	}
	if atomic.LoadInt64(&upstream.forecastCalls) != 1 {
		t.Fatal("forecast should reach upstream once")
	}
}

func TestSuggestionsCached(t *testing.T) {
	upstream := &stubUpstream{}
	svc := newTestService(upstream)
	q := Query{Kind: QuerySuggestions, Partial: "Lon", Limit: 5}

	first, err := svc.Suggestions(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || first[0].DisplayName != "London, GB" {
		t.Fatalf("suggestions = %+v", first)
	}

	if _, err := svc.Suggestions(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt64(&upstream.searchCalls); got != 1 {
		t.Fatalf("upstream called %d times, want 1", got)
	}
}
