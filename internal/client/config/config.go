// Package config loads runtime settings for the booking-calendar client.
// Values are resolved in three stages, later ones winning: built-in
// defaults, a JSON config file, command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	// ServerEndpointAddr is the base URL of the booking backend,
	// e.g. "http://127.0.0.1:8000".
	ServerEndpointAddr string

	// DatabaseDSN locates the local SQLite database holding persisted
	// client settings (session token).
	DatabaseDSN string

	// OnlineCheckInterval is how often the client probes server reachability.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.DatabaseDSN = "calendar.db"
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
