package routes

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/like-mike/listener-relay/metrics"
)

// PrometheusMiddleware records request counts and latency by matched route.
// Handler errors are resolved through the app's error handler here so the
// recorded status is the one the client receives.
func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		route := c.Route().Path
		if err != nil {
			metrics.HttpErrorsTotal.WithLabelValues(route).Inc()
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.HttpRequestsTotal.WithLabelValues(status, c.Method(), route).Inc()
		metrics.HttpRequestDurationSeconds.WithLabelValues(c.Method(), route).Observe(latency)
		return nil
	}
}
