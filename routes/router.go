package routes

import (
	"math"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/like-mike/listener-relay/chat"
	"github.com/like-mike/listener-relay/middleware"
)

// SetupApp initializes the fiber app and attaches handlers and middleware.
func SetupApp(relay *chat.Relay, allowedOrigin string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// Messages are not length limited. Zero would mean fiber's 4 MB default.
		BodyLimit: math.MaxInt32,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	// OpenTelemetry server spans
	app.Use(otelfiber.Middleware(otelfiber.WithNext(middleware.SkipInternal)))
	app.Use(middleware.Tracing())
	app.Use(middleware.Logger())
	app.Use(PrometheusMiddleware())
	// Inside the Prometheus middleware so recovered panics are counted as 500s.
	app.Use(fiberrecover.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", HealthHandler)
	RegisterRoutes(app, relay, allowedOrigin)

	return app
}
