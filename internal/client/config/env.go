package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "TRUEKICKS_"

// parseEnv overlays cfg with TRUEKICKS_* environment variables. A .env file
// in the working directory is loaded first when present; variables already
// set in the environment win over it. Unset variables leave fields untouched.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
