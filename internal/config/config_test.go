package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BURGERCTL_API_URL", "")
	t.Setenv("BURGERCTL_TIMEOUT", "")
	t.Setenv("BURGERCTL_RATE_LIMIT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5.0, cfg.API.RateLimit)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BURGERCTL_API_URL", "http://localhost:3000/api")
	t.Setenv("BURGERCTL_TIMEOUT", "5s")
	t.Setenv("BURGERCTL_RATE_LIMIT", "0")
	t.Setenv("BURGERCTL_EMAIL", "ci@example.com")
	t.Setenv("BURGERCTL_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0.0, cfg.API.RateLimit)
	assert.Equal(t, "ci@example.com", cfg.Credentials.Email)
	assert.Equal(t, "secret", cfg.Credentials.Password)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	chdir(t, t.TempDir())

	for _, raw := range []string{"soon", "-1s", "0s"} {
		t.Setenv("BURGERCTL_TIMEOUT", raw)
		_, err := Load()
		assert.Error(t, err, "timeout %q", raw)
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	chdir(t, t.TempDir())

	for _, raw := range []string{"fast", "-2", "NaN", "Inf", "+Inf"} {
		t.Setenv("BURGERCTL_RATE_LIMIT", raw)
		_, err := Load()
		assert.Error(t, err, "rate limit %q", raw)
	}
}
