package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-krishi-portal/config"
	"github.com/goliatone/go-krishi-portal/offline"
	"github.com/goliatone/go-krishi-portal/pkg/testsupport"
	"github.com/goliatone/go-krishi-portal/query"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/goliatone/go-krishi-portal/remote/memory"
	"github.com/goliatone/go-krishi-portal/router"
	"go.uber.org/zap"
)

func newContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := NewContainer(context.Background(), cfg, WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewContainerWithDefaults(t *testing.T) {
	c, err := NewContainerWithDefaults(context.Background(), WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}
	defer c.Close()

	if c.CacheService() == nil || c.Offline() == nil || c.Queries() == nil || c.App() == nil {
		t.Fatal("container should wire every component")
	}
	if _, ok := c.OfflineKV().(*offline.MemoryKV); !ok {
		t.Errorf("expected in-memory offline store without a path, got %T", c.OfflineKV())
	}

	defaults := config.DefaultConfig()
	if c.Config().Cache.Capacity != defaults.Cache.Capacity {
		t.Errorf("expected default capacity %d, got %d", defaults.Cache.Capacity, c.Config().Cache.Capacity)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cache.Capacity = 0

	c, err := NewContainer(context.Background(), cfg, WithLogger(zap.NewNop()))
	if err == nil {
		t.Fatal("expected error for invalid cache config")
	}
	if c != nil {
		t.Error("expected nil container on error")
	}
}

func TestNewContainer_MissingSeedFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.SeedFile = filepath.Join(t.TempDir(), "missing.json")

	if _, err := NewContainer(context.Background(), cfg, WithLogger(zap.NewNop())); err == nil {
		t.Fatal("expected error for a missing seed file")
	}
}

func TestContainer_AnonymousStart(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, nil)

	if err := c.App().Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if got := c.App().View().View; got != router.PublicView {
		t.Errorf("expected public view, got %v", got)
	}

	prices, err := c.Queries().MandiPrices(ctx)
	if err != nil {
		t.Fatalf("MandiPrices() failed: %v", err)
	}
	if len(prices) != len(memory.DefaultSeed().Prices) {
		t.Errorf("expected %d seeded prices, got %d", len(memory.DefaultSeed().Prices), len(prices))
	}
}

func TestContainer_AdminFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Backend.Principal = "officer-1"
	cfg.Backend.Admins = []string{"officer-1"}
	c := newContainer(t, cfg)

	if err := c.App().Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := c.App().Login(ctx); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	isAdmin, err := c.Queries().IsAdmin(ctx)
	if err != nil {
		t.Fatalf("IsAdmin() failed: %v", err)
	}
	if !isAdmin {
		t.Error("configured admin principal should be an admin")
	}
	if got := c.Client().Session(); got.IsNone() {
		t.Error("expected an established session after login")
	}
}

func TestContainer_SqliteOfflineSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Offline.Path = filepath.Join(t.TempDir(), "offline.db")
	cfg.Backend.SeedFile = testsupport.SeedFile(t, memory.Seed{
		Prices: []remote.MandiPrice{
			{Crop: "Tomato", Price: 1200, Location: "Kolar"},
			{Crop: "Maize", Price: 2090, Location: "Davangere"},
		},
	})

	first, err := NewContainer(ctx, cfg, WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	if err := first.App().Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if _, err := first.Queries().MandiPrices(ctx); err != nil {
		t.Fatalf("MandiPrices() failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	second := newContainer(t, cfg)
	prices, ok := offline.LoadAs[[]remote.MandiPrice](ctx, second.Offline(), query.ResourcePrices)
	if !ok {
		t.Fatal("expected mirrored prices after restart")
	}
	if len(prices) != 2 || prices[1].Crop != "Maize" {
		t.Errorf("unexpected mirrored prices: %+v", prices)
	}
	if _, ok := second.Offline().Timestamp(ctx, query.ResourcePrices); !ok {
		t.Error("expected a mirror timestamp after restart")
	}
}
