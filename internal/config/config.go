package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the public Stellar Burgers API
const DefaultAPIURL = "https://norma.nomoreparties.space/api"

// Config holds the environment driven configuration of the CLI
type Config struct {
	// API Configuration
	API APIConfig

	// Credentials used by login in non-interactive runs
	Credentials CredentialsConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds API endpoint configuration
type APIConfig struct {
	URL       string // Overrides server selection when set
	Timeout   time.Duration
	RateLimit float64 // Requests per second, 0 disables limiting
}

// CredentialsConfig holds login credentials from the environment
type CredentialsConfig struct {
	Email    string
	Password string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	timeout := 30 * time.Second
	if raw := os.Getenv("BURGERCTL_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BURGERCTL_TIMEOUT %q: %w", raw, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("invalid BURGERCTL_TIMEOUT %q: must be positive", raw)
		}
		timeout = parsed
	}

	rateLimit := 5.0
	if raw := os.Getenv("BURGERCTL_RATE_LIMIT"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, fmt.Errorf("invalid BURGERCTL_RATE_LIMIT %q: must be a non-negative number", raw)
		}
		rateLimit = parsed
	}

	// Logging configuration - quiet by default for a CLI
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			URL:       os.Getenv("BURGERCTL_API_URL"),
			Timeout:   timeout,
			RateLimit: rateLimit,
		},
		Credentials: CredentialsConfig{
			Email:    os.Getenv("BURGERCTL_EMAIL"),
			Password: os.Getenv("BURGERCTL_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
