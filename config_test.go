package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synergyApi/synergy"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadConfig(newViper())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, synergy.DefaultTimeout, cfg.RequestTimeout)
	assert.Equal(t, synergy.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.LoginRetries)
	assert.False(t, cfg.InsecureHTTP)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SYNERGY_PORT", "9090")
	t.Setenv("SYNERGY_ALLOWED_ORIGINS", "https://a.example.org,https://b.example.org")
	t.Setenv("SYNERGY_REQUEST_TIMEOUT", "30s")
	t.Setenv("SYNERGY_LOGIN_RETRIES", "0")
	t.Setenv("SYNERGY_INSECURE_HTTP", "true")

	cfg := loadConfig(newViper())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0, cfg.LoginRetries)
	assert.True(t, cfg.InsecureHTTP)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, loadDotEnv(""))
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SYNERGY_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SYNERGY_DOTENV_PROBE") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("SYNERGY_DOTENV_PROBE"))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("chatty")
	assert.Error(t, err)
}
