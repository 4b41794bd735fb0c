package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing tags the server span opened by otelfiber with the request id and
// the request body size. Request bodies are never recorded.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SkipInternal(c) {
			return c.Next()
		}
		span := trace.SpanFromContext(c.UserContext())
		span.SetAttributes(
			attribute.String("http.request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			attribute.Int("http.request.body.size_bytes", len(c.Body())),
		)
		return c.Next()
	}
}

// SkipInternal reports whether the request targets an operational endpoint
// that is excluded from access logs and tracing.
func SkipInternal(c *fiber.Ctx) bool {
	path := c.Path()
	return path == "/health" || path == "/metrics"
}
