package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig contains database-related configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig holds the freshness windows for the in-memory TTL caches,
// expressed as Go duration strings (e.g. "60s", "5m").
type CacheConfig struct {
	ProfileTTL string `yaml:"profile_ttl"`
	TierTTL    string `yaml:"tier_ttl"`
	NonceTTL   string `yaml:"nonce_ttl"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8008},
		Database: DatabaseConfig{Path: "linkdao-marketplace.db"},
		Cache: CacheConfig{
			ProfileTTL: "60s",
			TierTTL:    "60s",
			NonceTTL:   "5m",
		},
	}
}

// Load loads configuration from a YAML file. Missing fields fall back to
// the defaults from Default.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if config.Server.Port == 0 {
		config.Server.Port = Default().Server.Port
	}
	if config.Database.Path == "" {
		config.Database.Path = Default().Database.Path
	}
	d := Default().Cache
	if config.Cache.ProfileTTL == "" {
		config.Cache.ProfileTTL = d.ProfileTTL
	}
	if config.Cache.TierTTL == "" {
		config.Cache.TierTTL = d.TierTTL
	}
	if config.Cache.NonceTTL == "" {
		config.Cache.NonceTTL = d.NonceTTL
	}

	return config, nil
}

// GetProfileTTL parses and returns the seller-profile cache TTL.
func (c *Config) GetProfileTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.ProfileTTL)
}

// GetTierTTL parses and returns the discount-tier cache TTL.
func (c *Config) GetTierTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.TierTTL)
}

// GetNonceTTL parses and returns the login-nonce TTL.
func (c *Config) GetNonceTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.NonceTTL)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	for name, get := range map[string]func() (time.Duration, error){
		"profile_ttl": c.GetProfileTTL,
		"tier_ttl":    c.GetTierTTL,
		"nonce_ttl":   c.GetNonceTTL,
	} {
		d, err := get()
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	return nil
}
