package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearClientEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FILMDESK_BASE_URL", "FILMDESK_TIMEOUT", "FILMDESK_LOG_LEVEL", "FILMDESK_SESSION_TTL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filmdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadClient_DefaultsWithoutFile(t *testing.T) {
	clearClientEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadClient("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Empty(t, cfg.Headers)
}

func TestLoadClient_File(t *testing.T) {
	clearClientEnv(t)
	path := writeConfig(t, `
base_url: https://films.example.com/api/
timeout: 3s
log_level: debug
session_ttl: 1m
headers:
  x-client: filmctl
`)

	cfg, err := LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "https://films.example.com/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.SessionTTL)
	assert.Equal(t, map[string]string{"x-client": "filmctl"}, cfg.Headers)
}

func TestLoadClient_EnvOverridesFile(t *testing.T) {
	clearClientEnv(t)
	path := writeConfig(t, "base_url: http://from-file:8080\ntimeout: 3s\n")
	t.Setenv("FILMDESK_BASE_URL", "http://from-env:9090")
	t.Setenv("FILMDESK_TIMEOUT", "7s")

	cfg, err := LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9090", cfg.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
}

func TestLoadClient_Errors(t *testing.T) {
	clearClientEnv(t)

	_, err := LoadClient(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadClient(writeConfig(t, "base_url: localhost:8080\n"))
	assert.ErrorContains(t, err, "invalid base_url")
}
