// Package config loads packlist settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of the packlist command.
type Config struct {
	// DBPath is the SQLite file holding the trip snapshot.
	DBPath string `env:"PACKLIST_DB_PATH" envDefault:"./data/packlist.db"`

	// MetricsFile, when set, receives the prometheus metrics after each run.
	MetricsFile string `env:"PACKLIST_METRICS_FILE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
