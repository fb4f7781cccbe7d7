package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://ecommerce.routemisr.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.True(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, "memory", cfg.Session.Provider)
	assert.Equal(t, 500*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "https://staging.example.com/api/v1")
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "10s")
	t.Setenv("STOREFRONT_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("STOREFRONT_BREAKER_ENABLED", "false")
	t.Setenv("STOREFRONT_SEARCH_DEBOUNCE", "250ms")
	t.Setenv("STOREFRONT_LOG_LEVEL", "DEBUG")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.False(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestOptionsOverrideEnv(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "10s")

	cfg, err := NewConfig(WithHTTPTimeout(3 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
}

func TestRedisURLFallbackEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, "redis://localhost:6379", cfg.Session.RedisURL)
	// The generic variable supplies the URL but not the provider choice
	assert.Equal(t, "memory", cfg.Session.Provider)
}

func TestWithRedisSessionStore(t *testing.T) {
	cfg, err := NewConfig(WithRedisSessionStore("redis://localhost:6379"))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Session.Provider)
	assert.Equal(t, "redis://localhost:6379", cfg.Session.RedisURL)
}

func TestWithAPIBaseURLTrimsTrailingSlash(t *testing.T) {
	cfg, err := NewConfig(WithAPIBaseURL("https://example.com/api/v1/"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/v1", cfg.APIBaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := []byte(`
api_base_url: https://file.example.com/api/v1
http:
  timeout: 15s
retry:
  max_attempts: 4
session:
  provider: redis
  redis_url: redis://file:6379
search_debounce: 750ms
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, "redis", cfg.Session.Provider)
	assert.Equal(t, 750*time.Millisecond, cfg.SearchDebounce)
}

func TestOptionsAfterFileWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_debounce: 750ms\n"), 0o600))

	cfg, err := NewConfig(
		WithConfigFile(path),
		WithSearchDebounce(100*time.Millisecond),
	)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.SearchDebounce)
}

func TestLoadFromFileRejectsUnknownExtension(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile("config.toml")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{"empty base URL", func(c *Config) { c.APIBaseURL = "" }, ErrMissingConfiguration},
		{"non-http base URL", func(c *Config) { c.APIBaseURL = "ftp://example.com" }, ErrInvalidConfiguration},
		{"zero timeout", func(c *Config) { c.HTTP.Timeout = 0 }, ErrInvalidConfiguration},
		{"zero retry attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, ErrInvalidConfiguration},
		{"zero breaker threshold", func(c *Config) { c.CircuitBreaker.Threshold = 0 }, ErrInvalidConfiguration},
		{"unknown session provider", func(c *Config) { c.Session.Provider = "file" }, ErrInvalidConfiguration},
		{"redis without URL", func(c *Config) { c.Session.Provider = "redis" }, ErrMissingConfiguration},
		{"negative debounce", func(c *Config) { c.SearchDebounce = -time.Second }, ErrInvalidConfiguration},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidConfiguration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestNewConfigValidationFailureSurfaces(t *testing.T) {
	_, err := NewConfig(WithHTTPTimeout(-time.Second))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "t", "true", "TRUE", "yes", "on", " true "} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "off", "maybe"} {
		assert.False(t, parseBool(v), v)
	}
}
