package config

import (
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "jobboard")
	t.Setenv("DB_NAME", "jobboard")
}

func TestAppConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Equal(t, "https://accounts.google.com", cfg.Auth.OAuth.IssuerURL)
	assert.Equal(t, "openid email profile", cfg.Auth.OAuth.Scope)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestAppConfig_MissingDatabaseSettingsFail(t *testing.T) {
	// t.Setenv registers the restore; the vars must be truly unset for the
	// required tag to trip.
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	require.NoError(t, os.Unsetenv("DB_USER"))
	require.NoError(t, os.Unsetenv("DB_NAME"))

	var cfg AppConfig
	err := env.Parse(&cfg)

	assert.Error(t, err)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DEV", "true")
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_URI", "redis://cache.internal:6380/2")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("OAUTH_CLIENT_ID", "client-id")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))

	assert.True(t, cfg.IsDev)
	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "redis://cache.internal:6380/2", cfg.Redis.URI)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "client-id", cfg.Auth.OAuth.ClientID)
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var mode AuthMode
	require.NoError(t, mode.UnmarshalText([]byte("OAuth")))
	assert.Equal(t, AuthModeOAuth, mode)

	require.NoError(t, mode.UnmarshalText([]byte("mock")))
	assert.Equal(t, AuthModeMock, mode)

	err := mode.UnmarshalText([]byte("saml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}
