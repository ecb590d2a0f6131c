package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=trackex dbname=trackex")
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []byte("unit-test-secret"), cfg.JWTSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "trackex.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("DB_DSN", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "trackex.db")
	t.Setenv("DB_DRIVER", "oracle")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL_HOURS", "zero")
	_, err = LoadConfig()
	assert.Error(t, err)
}
