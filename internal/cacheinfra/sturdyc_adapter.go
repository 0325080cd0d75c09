package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
// It encapsulates the core sturdyc options needed for cache initialization.
type Config struct {
	// Capacity defines the maximum number of entries that the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Must be greater than 0 and not larger than Capacity.
	NumShards int

	// TTL is the time-to-live for cached entries. An expired entry is
	// re-fetched on the next read exactly like an invalidated one.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config sized for a single portal client.
func DefaultConfig() Config {
	return Config{
		Capacity:           1024,
		NumShards:          16,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the optional parts of Config to sturdyc options.
// Capacity, NumShards, TTL, and EvictionPercentage are passed directly
// to the sturdyc.New() constructor.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.NumShards > c.Capacity {
		return &ConfigError{Field: "NumShards", Message: "must not exceed Capacity"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
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

// Entry is the value stored under every key.
type Entry struct {
	Value     any
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

// Fresh reports whether the entry can be served without a remote read.
func (e Entry) Fresh() bool {
	return !e.Stale && e.Err == nil
}

// sturdycService stores entries in a sharded sturdyc client.
// Fetching and request coalescing stay with the caller, so only the
// storage half of sturdyc is used.
type sturdycService struct {
	client *sturdyc.Client[Entry]
}

// NewSturdycService creates a new sturdyc cache service adapter.
// It validates the configuration and initializes a sturdyc client with the provided settings.
func NewSturdycService(cfg Config) (*sturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[Entry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycService{client: client}, nil
}

// Get returns the entry stored under key.
func (s *sturdycService) Get(ctx context.Context, key string) (Entry, bool) {
	return s.client.Get(key)
}

// Set overwrites the entry stored under key.
func (s *sturdycService) Set(ctx context.Context, key string, entry Entry) error {
	s.client.Set(key, entry)
	return nil
}

// Invalidate flags the entry under key as stale, keeping its value.
func (s *sturdycService) Invalidate(ctx context.Context, key string) error {
	e, ok := s.client.Get(key)
	if !ok {
		return nil
	}
	e.Stale = true
	s.client.Set(key, e)
	return nil
}

// Clear removes every entry.
func (s *sturdycService) Clear(ctx context.Context) error {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
	return nil
}
