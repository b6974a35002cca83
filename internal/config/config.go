package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the environment-driven configuration for the planner client.
// A .env file next to the binary is honored when present.
type Config struct {
	// Backend
	APIBaseURL      string `env:"PLANNER_API_BASE_URL" envDefault:"http://localhost:8000"`
	HTTPTimeoutSecs int    `env:"PLANNER_HTTP_TIMEOUT_SECS" envDefault:"30"`
	SearchPerMinute int    `env:"PLANNER_SEARCH_PER_MINUTE" envDefault:"30"`

	// Local state
	StateDBPath string `env:"PLANNER_STATE_DB" envDefault:"planner.db"`

	// Logging
	LogLevel string `env:"PLANNER_LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
}

// Load reads configuration from the environment, after loading .env when
// one exists. A missing .env is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
