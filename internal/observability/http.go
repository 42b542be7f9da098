package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPMetrics records request counts and latency per route.
func HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}

		status := strconv.Itoa(c.Response().StatusCode())
		HTTPRequests().WithLabelValues(c.Method(), route, status).Inc()
		HTTPLatency().WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}
