package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays variables that are present in the environment; unset
// variables leave the current value untouched.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
	config.CORSOrigins = splitList(strings.Join(config.CORSOrigins, ","))
}
