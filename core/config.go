package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the storefront client.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Environment variables (medium priority)
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := NewConfig(
//	    WithHTTPTimeout(10*time.Second),
//	    WithSearchDebounce(500*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// APIBaseURL is the root of the external commerce API
	APIBaseURL string `yaml:"api_base_url"`

	// HTTP client settings
	HTTP HTTPConfig `yaml:"http"`

	// Retry settings for idempotent gateway calls
	Retry RetryConfig `yaml:"retry"`

	// CircuitBreaker settings guarding the gateway
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`

	// Session persistence settings
	Session SessionConfig `yaml:"session"`

	// SearchDebounce is the quiet period before a search query is dispatched
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Telemetry settings
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// HTTPConfig holds outbound HTTP client settings
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// RetryConfig configures retry behavior for idempotent calls
type RetryConfig struct {
	MaxAttempts   int           `yaml:"max_attempts"`
	InitialDelay  time.Duration `yaml:"initial_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	BackoffFactor float64       `yaml:"backoff_factor"`
	JitterEnabled bool          `yaml:"jitter_enabled"`
}

// CircuitBreakerConfig configures the gateway circuit breaker
type CircuitBreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Threshold        int           `yaml:"threshold"`
	Timeout          time.Duration `yaml:"timeout"`
	HalfOpenRequests int           `yaml:"half_open_requests"`
}

// SessionConfig configures token persistence
type SessionConfig struct {
	// Provider selects token persistence: "memory" or "redis"
	Provider string `yaml:"provider"`
	// RedisURL is used when Provider is "redis"
	RedisURL string `yaml:"redis_url"`
	// TTL bounds how long a persisted token survives without refresh
	TTL time.Duration `yaml:"ttl"`
}

// LoggingConfig configures the production logger
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text, auto
}

// TelemetryConfig configures OpenTelemetry export
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	// Endpoint is the OTLP gRPC collector address; empty selects the
	// stdout exporter for local development
	Endpoint string `yaml:"endpoint"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL: "https://ecommerce.routemisr.com/api/v1",
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts:   3,
			InitialDelay:  100 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			BackoffFactor: 2.0,
			JitterEnabled: true,
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          true,
			Threshold:        5,
			Timeout:          30 * time.Second,
			HalfOpenRequests: 3,
		},
		Session: SessionConfig{
			Provider: "memory",
			TTL:      24 * time.Hour,
		},
		SearchDebounce: 500 * time.Millisecond,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "storefront-client",
		},
	}
}

// LoadFromEnv overlays environment variables onto the configuration
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("STOREFRONT_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("STOREFRONT_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("STOREFRONT_RETRY_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("STOREFRONT_BREAKER_ENABLED"); v != "" {
		c.CircuitBreaker.Enabled = parseBool(v)
	}
	if v := os.Getenv("STOREFRONT_BREAKER_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CircuitBreaker.Threshold = n
		}
	}
	if v := os.Getenv("STOREFRONT_SESSION_PROVIDER"); v != "" {
		c.Session.Provider = v
	}
	if v := os.Getenv("STOREFRONT_REDIS_URL"); v != "" {
		c.Session.RedisURL = v
		if c.Session.Provider == "" {
			c.Session.Provider = "redis"
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" && c.Session.RedisURL == "" {
		c.Session.RedisURL = v
	}
	if v := os.Getenv("STOREFRONT_SEARCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SearchDebounce = d
		}
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("STOREFRONT_LOG_FORMAT"); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv("STOREFRONT_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Telemetry.Endpoint = v
	}
	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		c.Telemetry.ServiceName = v
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
// Values from the file override whatever is currently set.
func (c *Config) LoadFromFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: unsupported config file extension %q", ErrInvalidConfiguration, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// Validate checks the final configuration for consistency
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("%w: api base URL", ErrMissingConfiguration)
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("%w: api base URL must be http(s)", ErrInvalidConfiguration)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", ErrInvalidConfiguration)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: retry max attempts must be at least 1", ErrInvalidConfiguration)
	}
	if c.CircuitBreaker.Enabled && c.CircuitBreaker.Threshold < 1 {
		return fmt.Errorf("%w: circuit breaker threshold must be at least 1", ErrInvalidConfiguration)
	}
	switch c.Session.Provider {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: unknown session provider %q", ErrInvalidConfiguration, c.Session.Provider)
	}
	if c.Session.Provider == "redis" && c.Session.RedisURL == "" {
		return fmt.Errorf("%w: redis session provider requires a redis URL", ErrMissingConfiguration)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("%w: search debounce cannot be negative", ErrInvalidConfiguration)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfiguration, c.Logging.Level)
	}
	return nil
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithAPIBaseURL overrides the commerce API root
func WithAPIBaseURL(url string) Option {
	return func(c *Config) error {
		c.APIBaseURL = strings.TrimSuffix(url, "/")
		return nil
	}
}

// WithHTTPTimeout sets the outbound HTTP timeout
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Config) error {
		c.HTTP.Timeout = d
		return nil
	}
}

// WithRetry configures retry behavior for idempotent calls
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(c *Config) error {
		c.Retry.MaxAttempts = maxAttempts
		c.Retry.InitialDelay = initialDelay
		return nil
	}
}

// WithCircuitBreaker configures the gateway circuit breaker
func WithCircuitBreaker(threshold int, timeout time.Duration) Option {
	return func(c *Config) error {
		c.CircuitBreaker.Enabled = true
		c.CircuitBreaker.Threshold = threshold
		c.CircuitBreaker.Timeout = timeout
		return nil
	}
}

// WithRedisSessionStore selects Redis-backed token persistence
func WithRedisSessionStore(redisURL string) Option {
	return func(c *Config) error {
		c.Session.Provider = "redis"
		c.Session.RedisURL = redisURL
		return nil
	}
}

// WithSessionTTL bounds persisted token lifetime
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.Session.TTL = ttl
		return nil
	}
}

// WithSearchDebounce sets the quiet period for debounced search
func WithSearchDebounce(d time.Duration) Option {
	return func(c *Config) error {
		c.SearchDebounce = d
		return nil
	}
}

// WithLogLevel sets the minimum logging level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = strings.ToLower(level)
		return nil
	}
}

// WithTelemetry enables OpenTelemetry export
func WithTelemetry(enabled bool, endpoint string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = enabled
		c.Telemetry.Endpoint = endpoint
		return nil
	}
}

// WithConfigFile loads a YAML configuration file at option-apply time,
// so later options still win over file values
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadFromFile(path)
	}
}

// NewConfig creates a validated configuration from defaults, environment
// variables, and functional options, in increasing priority
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "on":
		return true
	}
	return false
}
