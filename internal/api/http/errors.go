package httpapi

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-gateway/internal/weather"
)

// ErrorHandler renders typed gateway errors as the {error, message, details?}
// envelope. Anything untyped becomes a generic 500 so internal detail never
// leaks to callers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var gwErr *weather.Error
	if errors.As(err, &gwErr) {
		if gwErr.Kind == weather.KindRateLimited && gwErr.RetryAfter > 0 {
			seconds := int(math.Ceil(gwErr.RetryAfter.Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
		}

		body := fiber.Map{
			"error":   gwErr.Label(),
			"message": gwErr.Message,
		}
		if len(gwErr.Details) > 0 {
			body["details"] = gwErr.Details
		}
		return c.Status(gwErr.HTTPStatus()).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Route not found",
			})
		}
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error":   "Request failed",
			"message": fiberErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal server error",
		"message": "Please try again later",
	})
}
