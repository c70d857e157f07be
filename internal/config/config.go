// Package config loads the benchmark server configuration from the
// environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Suite struct {
		// DataDir is the directory holding the competition data bundle
		// (shift, rotation and shuffle tables). When empty the server
		// falls back to synthetic tables.
		DataDir string `env:"SUITE_DATA_DIR"`
		// SyntheticSeed seeds the synthetic table generator used when
		// DataDir is unset.
		SyntheticSeed int64 `env:"SUITE_SYNTHETIC_SEED" envDefault:"1"`
		// MaxCached bounds the number of constructed problems kept in
		// the server cache.
		MaxCached int `env:"SUITE_MAX_CACHED" envDefault:"256"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development defaults to verbose logging
	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
