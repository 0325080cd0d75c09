// Package config loads the portal client configuration from YAML with
// AGRI_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-krishi-portal/cache"
	"github.com/goliatone/go-krishi-portal/logging"
	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	Backend BackendConfig  `yaml:"backend"`
	Cache   cache.Config   `yaml:"cache"`
	Offline OfflineConfig  `yaml:"offline"`
	Logging logging.Config `yaml:"logging"`
}

// BackendConfig describes the in-process backend and the dev identity.
type BackendConfig struct {
	// Principal is the identity the dev provider logs in as. Empty mints one.
	Principal string   `yaml:"principal"`
	Admins    []string `yaml:"admins"`
	// SeedFile is a JSON file of reference records loaded at startup.
	SeedFile string `yaml:"seed_file"`
}

// OfflineConfig locates the durable offline store.
type OfflineConfig struct {
	// Path of the sqlite database. Empty keeps the offline cache in memory.
	Path string `yaml:"path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache:   cache.DefaultConfig(),
		Logging: logging.DefaultConfig(),
	}
}

// Load reads path, falling back to defaults when it does not exist, and
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("AGRI_PRINCIPAL"); v != "" {
		c.Backend.Principal = v
	}
	if v := os.Getenv("AGRI_ADMINS"); v != "" {
		c.Backend.Admins = splitList(v)
	}
	if v := os.Getenv("AGRI_SEED_FILE"); v != "" {
		c.Backend.SeedFile = v
	}
	if v := os.Getenv("AGRI_OFFLINE_PATH"); v != "" {
		c.Offline.Path = v
	}
	if v := os.Getenv("AGRI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AGRI_LOG_DEVELOPMENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Field: "AGRI_LOG_DEVELOPMENT", Message: "must be a boolean"}
		}
		c.Logging.Development = b
	}
	if v := os.Getenv("AGRI_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{Field: "AGRI_CACHE_TTL", Message: "must be a duration"}
		}
		c.Cache.TTL = d
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return &ConfigError{Field: "Logging.Level", Message: err.Error()}
	}
	for _, a := range c.Backend.Admins {
		if strings.TrimSpace(a) == "" {
			return &ConfigError{Field: "Backend.Admins", Message: "must not contain empty principals"}
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
