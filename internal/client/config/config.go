package config

import "time"

// Config holds runtime settings for the TrueKicks CLI.
//
// Fields:
//   - APIBaseURL: base URL of the storefront REST API.
//   - HealthAddr: host:port of the server gRPC health endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DBPath: file name of the local SQLite store (relative to the data dir).
//   - LogLevel: debug, info, warn or error.
//   - CacheMaxAge: how long cached catalog responses may be served offline.
//   - RequestTimeout: per-request timeout of the REST client.
type Config struct {
	APIBaseURL          string        `env:"API_BASE_URL"`
	HealthAddr          string        `env:"HEALTH_ADDR"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	DBPath              string        `env:"DB_PATH"`
	LogLevel            string        `env:"LOG_LEVEL"`
	CacheMaxAge         time.Duration `env:"CACHE_MAX_AGE"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DBPath = "truekicks.db"
	c.LogLevel = "info"
	c.CacheMaxAge = 24 * time.Hour
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
