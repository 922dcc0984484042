package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server-side configuration, loaded from the
// environment (a .env file is honored in development).
type Config struct {
	Port              string
	DatabaseURL       string
	OpenAIAPIKey      string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	EmbeddingTimeout  time.Duration
	Env               string // "dev" or "prod"
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
		EmbeddingTimeout:  30 * time.Second,
		Env:               getEnv("APP_ENV", "dev"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.RateLimitRequests <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("rate limit configuration must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
