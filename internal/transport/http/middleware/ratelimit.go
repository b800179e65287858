package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter throttles a route group per client IP.
func RateLimiter(max int, window time.Duration) fiber.Handler {
	if max == 0 {
		max = 20
	}
	if window == 0 {
		window = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, slow down",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
