package httpapi

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-gateway/internal/ratelimit"
	"github.com/i474232898/weather-gateway/internal/weather"
)

// RateLimit gates requests behind a fixed-window limiter keyed by client IP.
// The scope keeps the global and weather tiers counting independently. A
// limiter backend failure fails open: availability over strictness.
func RateLimit(limiter ratelimit.Limiter, scope string, limit ratelimit.Limit) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dec, err := limiter.Allow(c.UserContext(), scope+":"+c.IP(), limit)
		if err != nil {
			log.Printf("rate limiter error (%s): %v", scope, err)
			return c.Next()
		}
		if !dec.Allowed {
			return weather.ErrRateLimited(dec.RetryAfter)
		}
		return c.Next()
	}
}
