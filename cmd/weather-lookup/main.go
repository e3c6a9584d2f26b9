package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/i18n"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/session"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	opts := providers.Options{
		BaseURL:          cfg.BaseURL,
		MaxRetries:       cfg.MaxRetries,
		BreakerThreshold: uint32(cfg.BreakerThreshold),
		BreakerTimeout:   cfg.BreakerTimeout,
	}

	var provider weather.Provider
	switch cfg.Provider {
	case config.ProviderOpenWeather:
		provider = providers.NewOpenWeatherProvider(httpClient, cfg.APIKey, opts)
	default:
		provider = providers.NewWeatherAPIProvider(httpClient, cfg.APIKey, opts)
	}

	memStore := store.NewMemoryStore(cfg.SessionMax, cfg.SessionMaxAge)
	service := session.NewService(memStore, provider, i18n.New(cfg.DefaultLanguage))

	// Idle sessions are swept periodically.
	sched := scheduler.New(cfg.SessionSweepInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Lookups wait for the provider.
		WriteTimeout: cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-lookup",
			"provider": provider.Name(),
			"sessions": memStore.Len(),
		})
	})

	if cfg.AssetDir != "" {
		app.Static("/assets", cfg.AssetDir)
	}

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: listening on :%s (provider=%s)", cfg.Port, provider.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("INFO: fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}
