package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of WEATHER_PROVIDER.
const (
	ProviderWeatherAPI  = "weatherapi"
	ProviderOpenWeather = "openweathermap"
)

type AppConfig struct {
	// Provider selects the upstream weather source.
	Provider   string
	APIKey     string
	BaseURL    string // empty = provider default
	MaxRetries int

	// Circuit breaker; a zero threshold disables it.
	BreakerThreshold int
	BreakerTimeout   time.Duration

	HTTPTimeout time.Duration

	// Session retention.
	SessionMaxAge        time.Duration // idle lifetime (0 = forever)
	SessionSweepInterval time.Duration
	SessionMax           int // max live sessions (0 = unlimited)

	DefaultLanguage string
	AssetDir        string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Provider = getenvDefault("WEATHER_PROVIDER", ProviderWeatherAPI)
	switch cfg.Provider {
	case ProviderWeatherAPI:
		cfg.APIKey = os.Getenv("WEATHERAPI_API_KEY")
		cfg.BaseURL = os.Getenv("WEATHERAPI_BASE_URL")
	case ProviderOpenWeather:
		cfg.APIKey = os.Getenv("OPENWEATHER_API_KEY")
		cfg.BaseURL = os.Getenv("OPENWEATHER_BASE_URL")
	default:
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER %q", cfg.Provider)
	}
	if cfg.APIKey == "" {
		log.Printf("WARN: no API key configured for %s; every lookup will fail", cfg.Provider)
	}

	var err error
	if cfg.MaxRetries, err = getenvInt("PROVIDER_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid PROVIDER_MAX_RETRIES: must not be negative")
	}

	if cfg.BreakerThreshold, err = getenvInt("PROVIDER_BREAKER_THRESHOLD", 0); err != nil {
		return nil, err
	}
	if cfg.BreakerThreshold < 0 {
		return nil, fmt.Errorf("invalid PROVIDER_BREAKER_THRESHOLD: must not be negative")
	}
	if cfg.BreakerTimeout, err = getenvDuration("PROVIDER_BREAKER_TIMEOUT", "2m"); err != nil {
		return nil, err
	}

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getenvDuration("SESSION_SWEEP_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.SessionMax, err = getenvInt("SESSION_MAX", 0); err != nil {
		return nil, err
	}

	cfg.DefaultLanguage = getenvDefault("UI_LANGUAGE", "tr")
	cfg.AssetDir = os.Getenv("ASSET_DIR")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
