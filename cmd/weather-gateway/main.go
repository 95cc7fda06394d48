package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/i474232898/weather-gateway/internal/api/http"
	"github.com/i474232898/weather-gateway/internal/config"
	"github.com/i474232898/weather-gateway/internal/ratelimit"
	"github.com/i474232898/weather-gateway/internal/scheduler"
	"github.com/i474232898/weather-gateway/internal/store"
	"github.com/i474232898/weather-gateway/internal/weather"
	"github.com/i474232898/weather-gateway/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	// In-memory TTL cache with a periodic sweep of expired entries.
	memStore := store.NewMemoryStore(cfg.CacheMaxEntries)

	janitor := scheduler.New(memStore, cfg.CacheSweepInterval)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer janitor.Stop()

	// Rate limiter: in-process by default, Redis-backed when configured so
	// the budget is shared across replicas.
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rl, err := ratelimit.NewRedisLimiter(client)
		if err != nil {
			log.Fatalf("failed to connect rate limiter to redis: %v", err)
		}
		limiter = rl
		log.Printf("rate limiter backed by redis at %s", cfg.RedisAddr)
	}

	// Upstream client and gateway core.
	upstream := openweather.NewClient(httpClient, cfg.OpenWeatherAPIKey)
	service := weather.NewService(memStore, upstream, weather.TTLs{
		Weather:    cfg.WeatherCacheTTL,
		Suggestion: cfg.SuggestionCacheTTL,
	})

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-gateway",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// API routes.
	httpapi.RegisterRoutes(app, service, limiter, httpapi.RateLimits{
		Global:  ratelimit.Limit{Max: cfg.GlobalLimitMax, Window: cfg.GlobalLimitWindow},
		Weather: ratelimit.Limit{Max: cfg.WeatherLimitMax, Window: cfg.WeatherLimitWindow},
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
