package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the CLI runtime configuration, read from the environment.
type Config struct {
	// DBPath overrides the default ~/.hunterquest.db location.
	DBPath string `env:"HQ_DB"`
	// Hunter is the profile the CLI acts as.
	Hunter string `env:"HQ_HUNTER" envDefault:"main"`
	// GeneratorURL points at a remote content generator. Empty means
	// the offline template generator.
	GeneratorURL     string        `env:"HQ_GENERATOR_URL"`
	GeneratorTimeout time.Duration `env:"HQ_GENERATOR_TIMEOUT" envDefault:"20s"`
	// TuningPath optionally points at a YAML tuning file.
	TuningPath string `env:"HQ_TUNING"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}
