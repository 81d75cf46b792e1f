package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the duration of the test. t.Setenv is called
// first so the original value is restored on cleanup.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_HOST", "DB_PORT",
		"DB_POOL_SIZE", "JWT_SECRET", "JWT_EXPIRES_IN", "PORT",
	} {
		unsetenv(t, key)
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "todo")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "todos")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadDefaults(t *testing.T) {
	clearAll(t)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoadMissingRequiredCollectsAllErrors(t *testing.T) {
	clearAll(t)

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadInvalidValues(t *testing.T) {
	clearAll(t)
	setRequired(t)
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("JWT_EXPIRES_IN", "soon")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "JWT_EXPIRES_IN")
}

func TestLoadPoolSizeClamped(t *testing.T) {
	clearAll(t)
	setRequired(t)

	t.Setenv("DB_POOL_SIZE", "1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.DB.MaxConns)

	t.Setenv("DB_POOL_SIZE", "500")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.DB.MaxConns)
}

func TestLoadExplicitValues(t *testing.T) {
	clearAll(t)
	setRequired(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "8080", cfg.Server.Port)
}
