package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/campaign-console/internal/config"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("SESSION_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	validEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "token", cfg.Session.GetTokenCookie())
	assert.Equal(t, "user", cfg.Session.GetUserCookie())
	assert.Equal(t, 24*time.Hour, cfg.Session.GetCookieDuration())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	validEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_COOKIE_DURATION", "72h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 72*time.Hour, cfg.Session.GetCookieDuration())
}

func TestLoad_RequiresBaseURL(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", "0123456789abcdef0123456789abcdef")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsShortSigningKey(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("SESSION_SIGNING_KEY", "short")

	_, err := config.Load()
	assert.Error(t, err)
}
