package config

import "time"

// Config holds runtime settings for the meetrec CLI.
//
// Fields:
//   - ServerURL: base URL of the recording service API.
//   - DBPath: SQLite file holding the session and the cached roster.
//   - LogFile: JSON log file; empty disables file logging.
//   - LogLevel: debug, info, warn or error.
//   - PollInterval: how often "watch" re-fetches the roster.
//   - RequestTimeout: per-request limit; zero means no client-side limit.
//   - RefreshAfterStop: re-fetch the roster after a successful stop.
type Config struct {
	ServerURL        string
	DBPath           string
	LogFile          string
	LogLevel         string
	PollInterval     time.Duration
	RequestTimeout   time.Duration
	RefreshAfterStop bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:7000"
	c.DBPath = "meetrec.db"
	c.LogFile = "meetrec.log"
	c.LogLevel = "info"
	c.PollInterval = 5 * time.Second
	c.RequestTimeout = 0
	c.RefreshAfterStop = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
