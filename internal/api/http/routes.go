package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-gateway/internal/ratelimit"
	"github.com/i474232898/weather-gateway/internal/weather"
)

// RateLimits bundles the two limiter tiers. Both key on client IP; a request
// must pass both to reach the gateway core. The global tier gates the whole
// /api surface; the weather tier gates weather/forecast/suggestion calls and
// runs after validation, so malformed requests and too-short autocomplete
// queries never consume the caller's weather budget.
type RateLimits struct {
	Global  ratelimit.Limit
	Weather ratelimit.Limit
}

const queryLocal = "query"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, limiter ratelimit.Limiter, limits RateLimits) {
	started := time.Now()

	api := app.Group("/api", RateLimit(limiter, "global", limits.Global))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Seconds(),
		})
	})

	weatherLimit := RateLimit(limiter, "weather", limits.Weather)
	wg := api.Group("/weather")

	wg.Get("/current", validateCityQuery, weatherLimit, func(c *fiber.Ctx) error {
		result, err := service.Current(c.UserContext(), localQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(result)
	})

	wg.Get("/coordinates", validateCoordinatesQuery, weatherLimit, func(c *fiber.Ctx) error {
		result, err := service.Current(c.UserContext(), localQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(result)
	})

	wg.Get("/forecast", validateCityQuery, weatherLimit, func(c *fiber.Ctx) error {
		result, err := service.GetForecast(c.UserContext(), localQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(result)
	})

	wg.Get("/suggestions", validateSuggestionsQuery, weatherLimit, func(c *fiber.Ctx) error {
		suggestions, err := service.Suggestions(c.UserContext(), localQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(suggestions)
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

func validateCityQuery(c *fiber.Ctx) error {
	q, err := weather.ValidateCity(c.Query("city"), c.Query("units"))
	if err != nil {
		return err
	}
	c.Locals(queryLocal, q)
	return c.Next()
}

func validateCoordinatesQuery(c *fiber.Ctx) error {
	q, err := weather.ValidateCoordinates(c.Query("lat"), c.Query("lon"), c.Query("units"))
	if err != nil {
		return err
	}
	c.Locals(queryLocal, q)
	return c.Next()
}

// validateSuggestionsQuery short-circuits too-short autocomplete queries to
// an empty list; cheap rejection, not an error.
func validateSuggestionsQuery(c *fiber.Ctx) error {
	q, tooShort := weather.ValidateSuggestions(c.Query("q"), c.Query("limit"))
	if tooShort {
		return c.JSON([]weather.Suggestion{})
	}
	c.Locals(queryLocal, q)
	return c.Next()
}

func localQuery(c *fiber.Ctx) weather.Query {
	q, _ := c.Locals(queryLocal).(weather.Query)
	return q
}
