// Package config assembles the client's runtime settings from, in order of
// increasing precedence: built-in defaults, a JSON file (-c/-config),
// environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the catalog client.
//
// Fields:
//   - APIBaseURL: base URL of the catalog REST backend.
//   - RequestTimeout: per-request HTTP deadline. The backend has no
//     server-side timeout, so the client must bring its own.
//   - PageSize: listings per page in the catalog grid.
//   - DBPath: path of the local SQLite database (session + favorite cache).
type Config struct {
	APIBaseURL     string        `env:"CATALOG_API_URL"`
	RequestTimeout time.Duration `env:"CATALOG_REQUEST_TIMEOUT"`
	PageSize       int           `env:"CATALOG_PAGE_SIZE"`
	DBPath         string        `env:"CATALOG_DB_PATH"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.RequestTimeout = 10 * time.Second
	c.PageSize = 6
	c.DBPath = "catalog.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON, environment, and flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
