package config_test

import (
	"log/slog"
	"testing"

	"github.com/satheeshds/gstbill/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "PORT", "AUTH_USER", "AUTH_PASS", "LOG_LEVEL", "LOG_FORMAT", "AGING_BASIS_TZ"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "Asia/Kolkata", cfg.AgingLocation.String())
	assert.Error(t, cfg.RequireDatabase())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gstbill")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("AGING_BASIS_TZ", "UTC")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireDatabase())
	assert.Equal(t, "9090", cfg.Port)
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	assert.NotNil(t, cfg.Logger())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"PORT":           "eighty",
		"LOG_LEVEL":      "loud",
		"LOG_FORMAT":     "xml",
		"AGING_BASIS_TZ": "Mars/Olympus",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
