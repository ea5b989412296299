package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	LoginDelay time.Duration `envconfig:"LOGIN_DELAY" default:"1s"`

	MockLatencyScale float64 `envconfig:"MOCK_LATENCY_SCALE" default:"1"`
	MockFailureRate  float64 `envconfig:"MOCK_FAILURE_RATE" default:"0"`

	ViewRenderWait  time.Duration `envconfig:"VIEW_RENDER_WAIT" default:"800ms"`
	SkeletonRefresh time.Duration `envconfig:"SKELETON_REFRESH" default:"1s"`
	ShellIdleTTL    time.Duration `envconfig:"SHELL_IDLE_TTL" default:"30m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided")
	}
	if c.CSRFSecret == "" {
		return errors.New("csrf secret must be provided")
	}
	if c.MockLatencyScale < 0 {
		return fmt.Errorf("MOCK_LATENCY_SCALE must not be negative, got %v", c.MockLatencyScale)
	}
	if c.MockFailureRate < 0 || c.MockFailureRate > 1 {
		return fmt.Errorf("MOCK_FAILURE_RATE must be within [0,1], got %v", c.MockFailureRate)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
