package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STORE_BACKEND", "HTTP_ADDR", "STORE_FILE_PATH", "DATABASE_DSN", "SESSION_SECRET", "SESSION_TTL_HOURS"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "data/registered_users.json", cfg.StoreFilePath)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported STORE_BACKEND")
}

func TestLoadRequiresSecretOutsideMemory(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "file")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "super-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "super-secret", cfg.SessionSecret)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL_HOURS", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_TTL_HOURS")
}

func TestNormalizeConnectionString(t *testing.T) {
	dsn := normalizeConnectionString("Host=db;Port=5433;Database=accounts;Username=svc;Password=pw;Timeout=10")
	assert.Equal(t, "host=db port=5433 dbname=accounts user=svc password=pw connect_timeout=10 sslmode=disable", dsn)
}

func TestNormalizeConnectionStringKeepsSSLMode(t *testing.T) {
	dsn := normalizeConnectionString("Host=db;Database=accounts;SslMode=require")
	assert.Equal(t, "host=db dbname=accounts sslmode=require", dsn)
}
