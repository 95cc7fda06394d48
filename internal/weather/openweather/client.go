package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrUnavailable is returned on timeouts, connection failures, and
	// while the circuit breaker is open.
	ErrUnavailable = errors.New("openweather: upstream unavailable")
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("openweather: api key is not configured")
)

// StatusError is returned for non-2xx upstream responses. Body is truncated
// and intended for internal logging only.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweather: unexpected status %d", e.Code)
}

const maxErrorBody = 2048

// Client calls the OpenWeather current/forecast and geocoding endpoints.
// Each call is a single attempt bounded by the HTTP client's timeout; a
// circuit breaker sheds load while the upstream is failing. Retries are
// deliberately not performed: weather data is time-sensitive and retry
// storms would compound rate-limit pressure upstream.
type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
	geoURL  string
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client against the production endpoints.
func NewClient(client *http.Client, apiKey string) *Client {
	return NewClientWithURLs(client, apiKey,
		"https://api.openweathermap.org/data/2.5",
		"https://api.openweathermap.org/geo/1.0")
}

// NewClientWithURLs creates a Client against explicit base URLs. Tests use
// this to point the client at a stub server.
func NewClientWithURLs(client *http.Client, apiKey, baseURL, geoURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		client:  client,
		apiKey:  apiKey,
		baseURL: baseURL,
		geoURL:  geoURL,
		circuit: cb,
	}
}

// CurrentByCity fetches current conditions by city name.
func (c *Client) CurrentByCity(ctx context.Context, city, units string) (CurrentPayload, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", units)

	var payload CurrentPayload
	err := c.getJSON(ctx, c.baseURL+"/weather", values, &payload)
	return payload, err
}

// CurrentByCoords fetches current conditions by coordinates.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64, units string) (CurrentPayload, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("units", units)

	var payload CurrentPayload
	err := c.getJSON(ctx, c.baseURL+"/weather", values, &payload)
	return payload, err
}

// Forecast fetches the 5-day/3-hour forecast by city name.
func (c *Client) Forecast(ctx context.Context, city, units string) (ForecastPayload, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", units)

	var payload ForecastPayload
	err := c.getJSON(ctx, c.baseURL+"/forecast", values, &payload)
	return payload, err
}

// SearchCities fetches geocoding matches for a partial city name.
func (c *Client) SearchCities(ctx context.Context, q string, limit int) ([]GeoResult, error) {
	values := url.Values{}
	values.Set("q", q)
	values.Set("limit", strconv.Itoa(limit))

	var results []GeoResult
	err := c.getJSON(ctx, c.geoURL+"/direct", values, &results)
	return results, err
}

// getJSON performs a single GET through the circuit breaker and decodes the
// 2xx response into out. Non-2xx responses surface as *StatusError.
func (c *Client) getJSON(ctx context.Context, endpoint string, values url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	values.Set("appid", c.apiKey)

	u := fmt.Sprintf("%s?%s", endpoint, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, execErr)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
		}

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, readErr)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	body, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	return json.Unmarshal(body, out)
}
