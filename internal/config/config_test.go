package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scholarships")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGIN", "")
	t.Setenv("RATE_LIMIT_PER_MIN", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, "postgres://localhost/scholarships", cfg.DatabaseURL)
}

func TestNewServerConfig_CustomValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scholarships")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGIN", "https://app.example.com")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://app.example.com", cfg.AllowedOrigin)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
}

func TestNewServerConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		apiKey      string
		errMsg      string
	}{
		{
			name:   "missing database url",
			apiKey: "test-key",
			errMsg: "DATABASE_URL",
		},
		{
			name:        "missing api key",
			databaseURL: "postgres://localhost/scholarships",
			errMsg:      "GEMINI_API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tt.databaseURL)
			t.Setenv("GEMINI_API_KEY", tt.apiKey)
			t.Setenv("PORT", "")

			_, err := NewServerConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewServerConfig_InvalidValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/scholarships")
	t.Setenv("GEMINI_API_KEY", "test-key")

	t.Setenv("PORT", "not-a-number")
	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")

	t.Setenv("PORT", "70000")
	_, err = NewServerConfig()
	require.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("RATE_LIMIT_PER_MIN", "-1")
	_, err = NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MIN")
}
