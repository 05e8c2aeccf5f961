package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 6000
  env: production
database:
  driver: memory
jwt:
  secret: file-secret
  refresh_secret: file-refresh
  expire: 30m
  refresh_expire: 48h
rate_limit:
  max_requests: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "1000")
	t.Setenv("JWT_REFRESH_EXPIRE", "7d")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "file-refresh", cfg.JWT.RefreshSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expire)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpire)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Second, cfg.RateLimitWindow())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow())
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expire)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "memory"
	assert.Error(t, cfg.Validate(), "secrets are required")

	cfg.JWT.Secret = "s"
	cfg.JWT.RefreshSecret = "r"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate(), "postgres needs a DSN")

	cfg.Database.DSN = "postgres://localhost/iblaze"
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("2d")
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, d)

	d, err = ParseDuration("90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}
