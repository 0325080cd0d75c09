// Package logging builds the zap logger shared by every component.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Config selects the logger flavour.
type Config struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig logs at info level in production format.
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// Validate checks the level name.
func (c Config) Validate() error {
	if c.Level == "" {
		return nil
	}
	if _, err := zap.ParseAtomicLevel(c.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		zc.Level = level
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("agriportal"), nil
}
