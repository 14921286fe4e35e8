package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	AppPort   string
	JWTSecret string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Odds provider configuration
	OddsAPIKey string

	// Rate limiting (best-effort, per caller key)
	RateLimit       int
	RateLimitWindow time.Duration

	// Redis configuration; when RedisAddr is empty the in-memory rate
	// limiter is used instead
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Environment is "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, with a .env file if present
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		AppPort:   os.Getenv("APP_PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		OddsAPIKey: os.Getenv("ODDS_API_KEY"),

		// 100 requests per 15 minutes by default
		RateLimit:       100,
		RateLimitWindow: 15 * time.Minute,

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.AppPort == "" {
		config.AppPort = "8080"
	}

	if limit := os.Getenv("RATE_LIMIT"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil {
			config.RateLimit = parsed
		}
	}
	if window := os.Getenv("RATE_WINDOW_MINUTES"); window != "" {
		if parsed, err := strconv.Atoi(window); err == nil {
			config.RateLimitWindow = time.Duration(parsed) * time.Minute
		}
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if parsed, err := strconv.Atoi(db); err == nil {
			config.RedisDB = parsed
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
	}

	return config, nil
}
