package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with values from CATALOG_* environment variables
// (see the env tags on Config). Unset variables leave the current values
// in place.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
