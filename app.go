package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/like-mike/listener-relay/chat"
	"github.com/like-mike/listener-relay/config"
	"github.com/like-mike/listener-relay/provider"
	"github.com/like-mike/listener-relay/routes"
	"github.com/like-mike/listener-relay/tracer"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tp, err := tracer.InitTracer(ctx, tracer.Options{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	app, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting listener relay on :%s (provider=%s, origin=%s)", cfg.Port, cfg.Provider, cfg.AllowedOrigin)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// newApp wires the configured provider into the relay and the HTTP app.
func newApp(ctx context.Context, cfg *config.Config) (*fiber.App, error) {
	p, err := provider.NewProviderFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	relay := chat.NewRelay(p, cfg.SystemPrompt)
	return routes.SetupApp(relay, cfg.AllowedOrigin), nil
}
