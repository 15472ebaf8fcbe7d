// Package config provides configuration loading and validation for the server
// and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the settings the HTTP server needs to start.
type ServerConfig struct {
	Port            int
	DatabaseURL     string
	GeminiAPIKey    string
	AllowedOrigin   string // CORS origin, "*" when unset
	RateLimitPerMin int    // per-client request budget, 0 disables limiting
}

// NewServerConfig creates a server configuration from environment variables.
// It reads PORT (default: 8080), DATABASE_URL (required), GEMINI_API_KEY
// (required), ALLOWED_ORIGIN and RATE_LIMIT_PER_MIN (default: 120).
func NewServerConfig() (*ServerConfig, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}

	rate, err := envInt("RATE_LIMIT_PER_MIN", 120)
	if err != nil {
		return nil, err
	}

	origin := os.Getenv("ALLOWED_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	config := &ServerConfig{
		Port:            port,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		AllowedOrigin:   origin,
		RateLimitPerMin: rate,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be non-negative, got: %d", c.RateLimitPerMin)
	}
	return nil
}

// envInt reads an integer environment variable, falling back to def when
// the variable is unset or empty.
func envInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}
