package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"MyFinance"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		// Driver selects the kvstore backend: sqlite, postgres or memory.
		Driver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
		Path   string `envconfig:"STORAGE_PATH" default:"myfinance.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"myfinance"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		// RequireSession gates mutating API routes behind PIN sessions.
		RequireSession bool   `envconfig:"AUTH_REQUIRE_SESSION" default:"false"`
		SessionSecret  string `envconfig:"AUTH_SESSION_SECRET" default:""`
	}

	Firebase struct {
		// CredentialsFile enables the optional Firebase token check.
		CredentialsFile string `envconfig:"FIREBASE_CREDENTIALS" default:""`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
