package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logger is the access log. Health and metrics scrapes are not logged.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Next:   SkipInternal,
		Format: "${time} ${method} ${path} ${status} ${latency} ${ip} ${respHeader:X-Request-ID}\n",
	})
}
