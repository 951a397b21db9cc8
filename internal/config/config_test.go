package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":5065", cfg.HTTPAddr)
	assert.Equal(t, "web", cfg.WebDir)
	assert.Empty(t, cfg.DataDir)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Zero(t, cfg.SessionSweepInterval)
	assert.Equal(t, "bcrypt", cfg.PasswordHasher)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.OIDC.Enabled())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"HTTP_ADDR":              ":8080",
		"TOKEN_TTL":              "30s",
		"SESSION_SWEEP_INTERVAL": "1m",
		"PASSWORD_HASHER":        "argon2id",
		"CORS_ALLOWED_ORIGINS":   "http://localhost:3000,http://localhost:5065",
		"LOG_FORMAT":             "json",
		"OIDC_ISSUER":            "https://id.example.com",
		"OIDC_CLIENT_ID":         "webstore",
		"OIDC_REDIRECT_URL":      "http://localhost:5065/auth/sso/callback",
	})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, "argon2id", cfg.PasswordHasher)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5065"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.OIDC.Enabled())
}

func TestLoadFrom_BadDuration(t *testing.T) {
	_, err := LoadFrom(map[string]string{"TOKEN_TTL": "forever"})
	assert.Error(t, err)
}

func TestValidate_CollectsAll(t *testing.T) {
	_, err := LoadFrom(map[string]string{
		"TOKEN_TTL":       "0s",
		"PASSWORD_HASHER": "md5",
		"LOG_LEVEL":       "loud",
		"OIDC_ISSUER":     "https://id.example.com",
	})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "validation failed:")
	assert.Contains(t, msg, "TOKEN_TTL must be at least 1s")
	assert.Contains(t, msg, "PASSWORD_HASHER")
	assert.Contains(t, msg, "LOG_LEVEL")
	assert.Contains(t, msg, "OIDC_CLIENT_ID is required")
}

func TestValidate_BcryptCost(t *testing.T) {
	_, err := LoadFrom(map[string]string{"BCRYPT_COST": "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestValidate_SubSecondTokenTTL(t *testing.T) {
	_, err := LoadFrom(map[string]string{"TOKEN_TTL": "500ms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL must be at least 1s")

	cfg, err := LoadFrom(map[string]string{"TOKEN_TTL": "1s"})
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.TokenTTL)
}
