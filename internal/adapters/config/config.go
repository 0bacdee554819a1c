package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"kunaclient/pkg/errors"
)

type Config struct {
	App           AppConfig
	Kuna          KunaConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"kunaclient"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type KunaConfig struct {
	BaseURL           string        `envconfig:"KUNA_BASE_URL" default:"https://api.kuna.io/v3/"`
	AccessKey         string        `envconfig:"KUNA_ACCESS_KEY"`
	SecretKey         string        `envconfig:"KUNA_SECRET_KEY"`
	Timeout           time.Duration `envconfig:"KUNA_HTTP_TIMEOUT" default:"10s"`
	RequestsPerMinute int           `envconfig:"KUNA_REQUESTS_PER_MINUTE" default:"300"`
}

// HasCredentials reports whether the private endpoints can be used.
func (c KunaConfig) HasCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from the environment, with .env as an
// optional overlay for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	if cfg.ErrorTracking.Enabled && cfg.ErrorTracking.SentryDSN == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "error tracking enabled but SENTRY_DSN is empty")
	}

	return &cfg, nil
}
