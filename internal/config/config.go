package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Synthesis defaults
	SampleRate      int     // Output sample rate in Hz
	SegmentDuration float64 // Per-event segment length in seconds
	PatternLength   int     // Default generated pattern length

	// Persistence (optional; the API runs stateless without it)
	DatabaseURL string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the hosting gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		Port:            getEnv("PORT", "8080"),
		SampleRate:      getEnvInt("SAMPLE_RATE", 44100),
		SegmentDuration: getEnvFloat("SEGMENT_DURATION", 0.25),
		PatternLength:   getEnvInt("PATTERN_LENGTH", 8),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
		AuthMode:        getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind an authenticating gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// HasDatabase returns true when pattern persistence is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
