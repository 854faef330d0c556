package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.bind", "127.0.0.1")
	v.SetDefault("server.port", 5005)
	v.SetDefault("server.rpc_timeout", 30*time.Second)
	v.SetDefault("server.require_signatures", true)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.signature_window", 5*time.Minute)
	v.SetDefault("server.replay_cache_size", 1<<16)

	v.SetDefault("database.backend", "pebble")
	v.SetDefault("database.path", "data/state")
	v.SetDefault("database.cache_size", 64<<20)
	v.SetDefault("database.state_cache_entries", 4096)

	v.SetDefault("events.driver", "sqlite")
	v.SetDefault("events.dsn", "data/events.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("marketplace.default_fee", "2.5")
	// Ninety days, the longest offer horizon accepted by default.
	v.SetDefault("marketplace.max_duration", 90*24*time.Hour)
	v.SetDefault("marketplace.hash", "sha512half")
}
