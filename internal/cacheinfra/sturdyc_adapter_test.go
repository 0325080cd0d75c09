package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capacity != 1024 {
		t.Errorf("expected Capacity to be 1024, got %d", cfg.Capacity)
	}

	if cfg.NumShards != 16 {
		t.Errorf("expected NumShards to be 16, got %d", cfg.NumShards)
	}

	if cfg.TTL != 5*time.Minute {
		t.Errorf("expected TTL to be 5 minutes, got %v", cfg.TTL)
	}

	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "valid default config", mutate: func(*Config) {}},
		{name: "zero capacity", mutate: func(c *Config) { c.Capacity = 0 }, wantField: "Capacity"},
		{name: "zero shards", mutate: func(c *Config) { c.NumShards = 0 }, wantField: "NumShards"},
		{name: "more shards than capacity", mutate: func(c *Config) { c.NumShards = c.Capacity + 1 }, wantField: "NumShards"},
		{name: "zero TTL", mutate: func(c *Config) { c.TTL = 0 }, wantField: "TTL"},
		{name: "eviction percentage too low", mutate: func(c *Config) { c.EvictionPercentage = 0 }, wantField: "EvictionPercentage"},
		{name: "eviction percentage too high", mutate: func(c *Config) { c.EvictionPercentage = 101 }, wantField: "EvictionPercentage"},
		{name: "negative eviction interval", mutate: func(c *Config) { c.EvictionInterval = -time.Second }, wantField: "EvictionInterval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected no validation error but got: %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestConfig_ToSturdycOptions(t *testing.T) {
	cfg := DefaultConfig()
	if got := len(cfg.ToSturdycOptions()); got != 0 {
		t.Errorf("expected no sturdyc options for default config, got %d", got)
	}

	cfg.EvictionInterval = time.Second
	if got := len(cfg.ToSturdycOptions()); got != 1 {
		t.Errorf("expected 1 sturdyc option with eviction interval, got %d", got)
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "config error in field TestField: test message"
	if err.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, err.Error())
	}
}

func TestNewSturdycService_InvalidConfig(t *testing.T) {
	service, err := NewSturdycService(Config{})
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if service != nil {
		t.Error("expected service to be nil when error occurs")
	}
}

func newTestService(t *testing.T) *sturdycService {
	t.Helper()
	service, err := NewSturdycService(Config{
		Capacity:           100,
		NumShards:          2,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func TestSturdycService_GetSet(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	if _, ok := service.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	now := time.Now()
	if err := service.Set(ctx, "cropAdvisories", Entry{Value: []string{"wheat"}, UpdatedAt: now}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := service.Get(ctx, "cropAdvisories")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if !got.Fresh() {
		t.Error("expected entry to be fresh")
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("expected UpdatedAt %v, got %v", now, got.UpdatedAt)
	}
}

func TestSturdycService_InvalidateKeepsValue(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_ = service.Set(ctx, "mandiPrices", Entry{Value: 42})
	if err := service.Invalidate(ctx, "mandiPrices"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	got, ok := service.Get(ctx, "mandiPrices")
	if !ok {
		t.Fatal("invalidation must not evict the entry")
	}
	if got.Fresh() {
		t.Error("expected entry to be stale")
	}
	if got.Value != 42 {
		t.Errorf("expected value to survive invalidation, got %v", got.Value)
	}

	if err := service.Invalidate(ctx, "never-set"); err != nil {
		t.Errorf("invalidating a missing key should be a no-op, got %v", err)
	}
	if _, ok := service.Get(ctx, "never-set"); ok {
		t.Error("invalidating a missing key must not create it")
	}
}

func TestSturdycService_Clear(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_ = service.Set(ctx, "isCallerAdmin", Entry{Value: true})
	_ = service.Set(ctx, "currentUserProfile", Entry{Value: "p"})

	if err := service.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := service.Get(ctx, "isCallerAdmin"); ok {
		t.Error("expected cache to be empty after Clear")
	}
}
