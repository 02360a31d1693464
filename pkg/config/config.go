package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads an optional .env file and parses the environment into cfg.
// A missing .env file is not an error.
func Load[T any](cfg *T, files ...string) error {
	_ = godotenv.Load(files...)

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](cfg *T, files ...string) {
	_ = godotenv.Load(files...)

	env.Must(cfg, env.Parse(cfg))
}
