package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_FILE", "")
	t.Setenv("IDENTITY_ISSUER", "https://id.agency.com")
	t.Setenv("IDENTITY_JWKS_URL", "https://id.agency.com/.well-known/jwks.json")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "portal.db", cfg.DatabaseFile)
	require.Equal(t, 7*24*time.Hour, cfg.InviteTTL)
	require.Equal(t, "portal", cfg.IdentityAudience)
	require.Equal(t, 1024, cfg.EventQueueSize)
	require.Empty(t, cfg.RedisAddr)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  log_level: debug
portal:
  staff_domain: agency.com
  invite_ttl: 48h
identity:
  audience: hub
cache:
  ttl: 1m
  redis_addr: redis:6379
`), 0o600))

	t.Setenv("PORTAL_CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Port, "env overrides file")
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "agency.com", cfg.StaffDomain)
	require.Equal(t, 48*time.Hour, cfg.InviteTTL)
	require.Equal(t, "hub", cfg.IdentityAudience)
	require.Equal(t, time.Minute, cfg.QueryCacheTTL)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestLoadConfigBadFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("portal:\n  invite_ttl: forever\n"), 0o600))
	t.Setenv("PORTAL_CONFIG_FILE", path)

	_, err := LoadConfig()
	require.ErrorContains(t, err, "portal.invite_ttl")

	t.Setenv("PORTAL_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadConfig()
	require.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_FILE", "")
	t.Setenv("IDENTITY_ISSUER", "")
	t.Setenv("IDENTITY_JWKS_URL", "")
	t.Setenv("IDENTITY_JWKS_FILE", "")
	t.Setenv("IDENTITY_JWKS", "")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "IDENTITY_ISSUER is required")
	require.ErrorContains(t, err, "IDENTITY_JWKS_URL")
}

func TestGetEnvDurationOrDefault(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	require.Equal(t, 90*time.Second, getEnvDurationOrDefault("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "15")
	require.Equal(t, 15*time.Minute, getEnvDurationOrDefault("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	require.Equal(t, time.Second, getEnvDurationOrDefault("TEST_DURATION", time.Second))
}
