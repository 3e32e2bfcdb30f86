// Package config loads application configuration from a YAML file, with
// environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deepline-bio/ancestrymatch/internal/compare"
	"github.com/deepline-bio/ancestrymatch/internal/ratelimit"
)

// DatabaseConfig locates the reference SQLite database.
type DatabaseConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig   `yaml:"database"`
	Compare  compare.Options  `yaml:"compare"`
	Fetch    ratelimit.Config `yaml:"fetch"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "ancestrymatch.db"},
		Compare:  compare.DefaultOptions(),
		Fetch:    ratelimit.DefaultConfig(),
	}
}

// Load reads configuration from path. A missing file is not an error: defaults
// are returned so the tool works out of the box. The ANCESTRYMATCH_DB
// environment variable overrides the database path either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if db := os.Getenv("ANCESTRYMATCH_DB"); db != "" {
		cfg.Database.Path = db
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = Default().Database.Path
	}
}
