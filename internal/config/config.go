package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all gateway settings.
type AppConfig struct {
	OpenWeatherAPIKey string

	// UpstreamTimeout bounds each outbound provider call.
	UpstreamTimeout time.Duration

	// Cache lifetimes and bounds.
	WeatherCacheTTL    time.Duration
	SuggestionCacheTTL time.Duration
	CacheMaxEntries    int
	CacheSweepInterval time.Duration

	// Global limiter: applies to all gateway traffic.
	GlobalLimitMax    int
	GlobalLimitWindow time.Duration

	// Weather limiter: applies to weather/forecast/suggestion calls only.
	WeatherLimitMax    int
	WeatherLimitWindow time.Duration

	// RedisAddr, when set, switches the limiters to the Redis backend so
	// the budget is shared across replicas.
	RedisAddr string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("WARN: OPENWEATHER_API_KEY is not set; upstream calls will fail")
	}

	var err error
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.WeatherCacheTTL, err = getenvDuration("WEATHER_CACHE_TTL", "300s"); err != nil {
		return nil, err
	}
	if cfg.SuggestionCacheTTL, err = getenvDuration("SUGGESTION_CACHE_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.CacheSweepInterval, err = getenvDuration("CACHE_SWEEP_INTERVAL", "5m"); err != nil {
		return nil, err
	}
	if cfg.GlobalLimitWindow, err = getenvDuration("GLOBAL_RATE_WINDOW", "15m"); err != nil {
		return nil, err
	}
	if cfg.WeatherLimitWindow, err = getenvDuration("WEATHER_RATE_WINDOW", "1m"); err != nil {
		return nil, err
	}

	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 1024)
	cfg.GlobalLimitMax = getenvInt("GLOBAL_RATE_MAX", 100)
	cfg.WeatherLimitMax = getenvInt("WEATHER_RATE_MAX", 20)

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
