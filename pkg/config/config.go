// Package config loads server configuration from an optional yaml file and
// the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "RENT_ATLAS"

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Store struct {
	// Driver selects the storage backend: "memory" or "duckdb".
	Driver string `mapstructure:"driver"`
	// Path is the database file for the duckdb driver.
	Path string `mapstructure:"path"`
	// Seed loads the sample portfolio into an empty store on startup.
	Seed bool `mapstructure:"seed"`
}

type Config struct {
	Server    Server `mapstructure:"server"`
	Store     Store  `mapstructure:"store"`
	StaticDir string `mapstructure:"static_dir"`
}

// Load reads configuration from path (optional) with environment overrides,
// e.g. RENT_ATLAS_SERVER_PORT=9000.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", "rent-atlas.db")
	v.SetDefault("store.seed", true)
	v.SetDefault("static_dir", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Store.Driver != "memory" && cfg.Store.Driver != "duckdb" {
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	return &cfg, nil
}
