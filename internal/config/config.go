package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the travelviz server configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Backend   BackendConfig   `yaml:"backend"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Demo      DemoConfig      `yaml:"demo"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int `yaml:"idle_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxUploadMB     int `yaml:"max_upload_mb"`

	// SecureCookies marks identity cookies Secure; enable behind TLS.
	SecureCookies bool `yaml:"secure_cookies"`
}

// BackendConfig describes the remote AI travel backend.
type BackendConfig struct {
	BaseURL           string `yaml:"base_url"`
	RetryAttempts     int    `yaml:"retry_attempts"` // 0 uses the default, negative disables retries
	RetryBaseDelayMS  int    `yaml:"retry_base_delay_ms"`
	HealthTimeoutMS   int    `yaml:"health_timeout_ms"`
	UploadTimeoutSec  int    `yaml:"upload_timeout_sec"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

// DatabaseConfig holds the Postgres connection used for client preferences.
type DatabaseConfig struct {
	URL           string `yaml:"url"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// RedisConfig holds the Redis connection used for sessions and activity logs.
type RedisConfig struct {
	URL           string `yaml:"url"`
	SessionTTLMin int    `yaml:"session_ttl_min"`
	PoolSize      int    `yaml:"pool_size"`
	DialTimeoutMS int    `yaml:"dial_timeout_ms"`
	OpTimeoutMS   int    `yaml:"op_timeout_ms"`
}

// DemoConfig tunes the simulated processing used when the backend is unreachable.
type DemoConfig struct {
	MinDelayMS int `yaml:"min_delay_ms"`
	MaxDelayMS int `yaml:"max_delay_ms"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MetricsConfig protects the Prometheus endpoint. Empty token disables auth.
type MetricsConfig struct {
	BearerToken string `yaml:"bearer_token"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from config/<env>.yaml.
func Load(env string) (Config, error) {
	path := filepath.Join("config", env+".yaml")

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML with ${VAR} expansion, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 15
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.IdleTimeoutSec <= 0 {
		c.HTTP.IdleTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 30
	}
	if c.HTTP.MaxUploadMB <= 0 {
		c.HTTP.MaxUploadMB = 12
	}
	if c.Backend.RetryAttempts == 0 {
		c.Backend.RetryAttempts = 3
	}
	if c.Backend.RetryBaseDelayMS <= 0 {
		c.Backend.RetryBaseDelayMS = 1000
	}
	if c.Backend.HealthTimeoutMS <= 0 {
		c.Backend.HealthTimeoutMS = 5000
	}
	if c.Backend.UploadTimeoutSec <= 0 {
		c.Backend.UploadTimeoutSec = 30
	}
	if c.Backend.RequestTimeoutSec <= 0 {
		c.Backend.RequestTimeoutSec = 10
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}
	if c.Redis.SessionTTLMin <= 0 {
		c.Redis.SessionTTLMin = 24 * 60
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeoutMS <= 0 {
		c.Redis.DialTimeoutMS = 2000
	}
	if c.Redis.OpTimeoutMS <= 0 {
		c.Redis.OpTimeoutMS = 1000
	}
	if c.Demo.MinDelayMS <= 0 && c.Demo.MaxDelayMS <= 0 {
		c.Demo.MinDelayMS = 2000
		c.Demo.MaxDelayMS = 4000
	}
	if c.Demo.MaxDelayMS < c.Demo.MinDelayMS {
		c.Demo.MaxDelayMS = c.Demo.MinDelayMS
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 120
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend.base_url must be an http(s) URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.RequestTimeoutSec >= c.HTTP.WriteTimeoutSec {
		return fmt.Errorf("backend.request_timeout_sec (%d) must be below http.write_timeout_sec (%d)",
			c.Backend.RequestTimeoutSec, c.HTTP.WriteTimeoutSec)
	}
	if c.Backend.UploadTimeoutSec >= c.HTTP.WriteTimeoutSec {
		return fmt.Errorf("backend.upload_timeout_sec (%d) must be below http.write_timeout_sec (%d)",
			c.Backend.UploadTimeoutSec, c.HTTP.WriteTimeoutSec)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// Retries returns how many times a failed request is retried.
func (b BackendConfig) Retries() int {
	return max(b.RetryAttempts, 0)
}

// RetryBaseDelay returns the backoff base as a duration.
func (b BackendConfig) RetryBaseDelay() time.Duration {
	return time.Duration(b.RetryBaseDelayMS) * time.Millisecond
}

// HealthTimeout returns the health probe deadline.
func (b BackendConfig) HealthTimeout() time.Duration {
	return time.Duration(b.HealthTimeoutMS) * time.Millisecond
}

// WriteTimeout returns the server write deadline, which also bounds handlers.
func (h HTTPConfig) WriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeoutSec) * time.Second
}

// UploadTimeout returns the photo upload deadline.
func (b BackendConfig) UploadTimeout() time.Duration {
	return time.Duration(b.UploadTimeoutSec) * time.Second
}

// RequestTimeout returns the per-attempt timeout of the generic request path.
func (b BackendConfig) RequestTimeout() time.Duration {
	return time.Duration(b.RequestTimeoutSec) * time.Second
}

// MinDelay returns the shortest simulated processing time.
func (d DemoConfig) MinDelay() time.Duration {
	return time.Duration(d.MinDelayMS) * time.Millisecond
}

// MaxDelay returns the longest simulated processing time.
func (d DemoConfig) MaxDelay() time.Duration {
	return time.Duration(d.MaxDelayMS) * time.Millisecond
}

// SessionTTL returns how long an idle session survives.
func (r RedisConfig) SessionTTL() time.Duration {
	return time.Duration(r.SessionTTLMin) * time.Minute
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

// DialTimeout returns the redis connect deadline.
func (r RedisConfig) DialTimeout() time.Duration {
	return time.Duration(r.DialTimeoutMS) * time.Millisecond
}

// OpTimeout returns the redis read and write deadline.
func (r RedisConfig) OpTimeout() time.Duration {
	return time.Duration(r.OpTimeoutMS) * time.Millisecond
}
