package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"invoice-app"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		// Dir holds one file per storage key, the local equivalent of the
		// browser's localStorage area.
		Dir string `envconfig:"DATA_DIR" default:""`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Session struct {
		Secret string        `envconfig:"SESSION_SECRET" default:"dev-secret-change-me"`
		TTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}
}

// DataDir resolves the storage directory, defaulting to ~/.invoice-app.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".invoice-app"), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
