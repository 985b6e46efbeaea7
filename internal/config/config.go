// Package config handles configuration for the taskkeeper CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - DatabasePath: path of the SQLite task store.
//   - SessionFile: where the login session token is cached.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the development default outside of tests.
//   - SessionValidityDuration: session token lifetime.
//   - DateFormat: fallback date rendering when a user has not configured one.
type Config struct {
	DatabasePath            string
	SessionFile             string
	SecretKey               string
	SessionValidityDuration time.Duration
	DateFormat              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: The secret key default is insecure and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "tasks.db"
	c.SessionFile = ".taskkeeper/session"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.DateFormat = "2006-01-02"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
