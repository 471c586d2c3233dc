// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config carries everything the client needs at construction time. The
// Google client identifiers are injected into the provider at its one-time
// configure step.
type Config struct {
	AppName           string        `env:"APP_NAME" envDefault:"Tasklist"`
	APIBaseURL        string        `env:"API_BASE_URL" envDefault:"http://0.0.0.0:8080"`
	GoogleWebClientID string        `env:"GOOGLE_WEB_CLIENT_ID"`
	GoogleIOSClientID string        `env:"GOOGLE_IOS_CLIENT_ID"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	KeyringService    string        `env:"KEYRING_SERVICE" envDefault:"tasklist"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error; explicit environment variables always win.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] parsing environment")
	}
	return cfg, nil
}
