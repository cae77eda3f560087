// Package config defines the argus configuration and its layered loader.
package config

import (
	"fmt"
	"time"
)

// Supported archive drivers. An empty driver disables the archive.
var supportedDrivers = map[string]bool{
	"":         true,
	"postgres": true,
	"sqlite":   true,
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug or info.
	LogLevel string `koanf:"log_level"`

	RESTPort string `koanf:"rest_port"`
	WSPort   string `koanf:"ws_port"`

	// NBABaseURL is the root of the live-data CDN.
	NBABaseURL        string        `koanf:"nba_base_url"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	HTTPTimeout       time.Duration `koanf:"http_timeout"`

	// PollInterval is the refresh cadence of the tracker.
	PollInterval time.Duration `koanf:"poll_interval"`

	// Display truncation for the two feeds.
	GlobalFeedLimit int `koanf:"global_feed_limit"`
	PlayerFeedLimit int `koanf:"player_feed_limit"`

	// RedisURL enables the roster cache and the update stream when set.
	RedisURL  string        `koanf:"redis_url"`
	RosterTTL time.Duration `koanf:"roster_ttl"`

	// DBDriver enables the play-log archive when set.
	DBDriver string `koanf:"db_driver"`
	DBDSN    string `koanf:"db_dsn"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		RESTPort:          "8080",
		WSPort:            "8081",
		NBABaseURL:        "https://cdn.nba.com/static/json/liveData",
		RequestsPerSecond: 2,
		HTTPTimeout:       15 * time.Second,
		PollInterval:      2 * time.Second,
		GlobalFeedLimit:   100,
		PlayerFeedLimit:   50,
		RosterTTL:         10 * time.Minute,
	}
}

// Validate checks the values a running service depends on.
func (c *Config) Validate() error {
	switch {
	case c.RESTPort == "":
		return fmt.Errorf("%w: rest_port must not be empty", ErrInvalidConfig)
	case c.WSPort == "":
		return fmt.Errorf("%w: ws_port must not be empty", ErrInvalidConfig)
	case c.NBABaseURL == "":
		return fmt.Errorf("%w: nba_base_url must not be empty", ErrInvalidConfig)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidConfig)
	case c.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidConfig)
	case c.GlobalFeedLimit <= 0 || c.PlayerFeedLimit <= 0:
		return fmt.Errorf("%w: feed limits must be positive", ErrInvalidConfig)
	case !supportedDrivers[c.DBDriver]:
		return fmt.Errorf("%w: unsupported db_driver %q", ErrInvalidConfig, c.DBDriver)
	case c.DBDriver != "" && c.DBDSN == "":
		return fmt.Errorf("%w: db_dsn is required when db_driver is set", ErrInvalidConfig)
	}
	return nil
}

// ArchiveEnabled reports whether a play-log database is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DBDriver != ""
}

// RedisEnabled reports whether Redis is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}
