// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Tracks  TracksConfig  `mapstructure:"tracks"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the upstream annotation endpoints.
type APIConfig struct {
	UniProtBaseURL  string        `mapstructure:"uniprot_base_url"`
	ProteinsBaseURL string        `mapstructure:"proteins_base_url"`
	UserAgent       string        `mapstructure:"user_agent"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// TracksConfig holds track aggregation defaults.
type TracksConfig struct {
	// Window is the default smoothing/binning window in residues.
	// Odd values bin symmetrically; any value >= 1 is valid.
	Window int `mapstructure:"window"`
}

// CacheConfig holds the optional DuckDB record cache settings.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file plus VARVIZ3D_* environment
// variables. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VARVIZ3D")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.uniprot_base_url", "https://rest.uniprot.org/uniprotkb")
	v.SetDefault("api.proteins_base_url", "https://www.ebi.ac.uk/proteins/api")
	v.SetDefault("api.user_agent", "VarViz3D/0.4")
	v.SetDefault("api.timeout", "25s")

	v.SetDefault("tracks.window", 15)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "./data/varviz3d.db")

	v.SetDefault("server.addr", ":8085")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.API.UniProtBaseURL == "" {
		return fmt.Errorf("api.uniprot_base_url is required")
	}
	if c.API.ProteinsBaseURL == "" {
		return fmt.Errorf("api.proteins_base_url is required")
	}
	if c.API.Timeout < time.Second {
		return fmt.Errorf("api.timeout must be at least 1 second")
	}
	if c.Tracks.Window < 1 {
		return fmt.Errorf("tracks.window must be at least 1")
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when cache is enabled")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}
	return nil
}
