package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "feastgo-backend", cfg.AppName)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Context.RequestTimeout)
	assert.NotEmpty(t, cfg.Database.URL)
	assert.True(t, cfg.Migrations.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/feast?sslmode=disable")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/feast?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 2*time.Second, cfg.Context.RequestTimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
}

func TestDurationFromBareSeconds(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Context.ShutdownTimeout)
}
