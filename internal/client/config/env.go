package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays variables that are present in the environment.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
