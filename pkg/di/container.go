package di

import (
	"context"
	"fmt"

	"github.com/goliatone/go-krishi-portal/cache"
	"github.com/goliatone/go-krishi-portal/config"
	"github.com/goliatone/go-krishi-portal/identity"
	"github.com/goliatone/go-krishi-portal/logging"
	"github.com/goliatone/go-krishi-portal/offline"
	"github.com/goliatone/go-krishi-portal/offline/sqlitekv"
	"github.com/goliatone/go-krishi-portal/portal"
	"github.com/goliatone/go-krishi-portal/prefs"
	"github.com/goliatone/go-krishi-portal/query"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/goliatone/go-krishi-portal/remote/memory"
	"go.uber.org/zap"
)

// Container owns one fully wired portal client.
// Every component is built once in NewContainer and shared afterwards.
type Container struct {
	config *config.Config
	logger *zap.Logger

	readCache cache.CacheService
	kv        offline.KV
	store     *sqlitekv.Store
	offline   *offline.Cache
	backend   *memory.Backend
	client    *remote.Client
	queries   *query.Orchestrator
	prefs     *prefs.Store
	provider  *identity.DevProvider
	app       *portal.App
}

// Option customizes a Container before it is wired.
type Option func(*Container)

// WithLogger replaces the logger built from the logging config.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// NewContainer builds the component graph described by cfg.
// The offline cache lives in sqlite when cfg.Offline.Path is set and in
// memory otherwise. Close releases the sqlite handle.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.logger = logger
	}

	readCache, err := cache.NewCacheService(cfg.Cache)
	if err != nil {
		return nil, err
	}
	c.readCache = readCache

	if cfg.Offline.Path != "" {
		store, err := sqlitekv.Open(ctx, cfg.Offline.Path)
		if err != nil {
			return nil, err
		}
		c.store = store
		c.kv = store
	} else {
		c.kv = offline.NewMemoryKV()
	}
	c.offline = offline.New(c.kv, offline.WithLogger(c.logger.Named("offline")))

	seed := memory.DefaultSeed()
	if cfg.Backend.SeedFile != "" {
		if seed, err = memory.LoadSeed(cfg.Backend.SeedFile); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	admins := make([]remote.Principal, 0, len(cfg.Backend.Admins))
	for _, a := range cfg.Backend.Admins {
		admins = append(admins, remote.Principal(a))
	}
	c.backend = memory.New(memory.WithAdmins(admins...))
	c.backend.Seed(seed)

	c.client = remote.NewClient(c.backend, c.logger.Named("remote"))
	c.queries = query.New(c.client, c.readCache, c.offline, query.WithLogger(c.logger.Named("query")))
	c.prefs = prefs.NewStore(c.kv, c.logger.Named("prefs"))
	c.provider = identity.NewDevProvider(remote.Principal(cfg.Backend.Principal))
	c.app = portal.New(c.provider, c.client, c.queries, c.prefs, c.logger)

	return c, nil
}

// NewContainerWithDefaults builds a container from config.DefaultConfig.
func NewContainerWithDefaults(ctx context.Context, opts ...Option) (*Container, error) {
	return NewContainer(ctx, config.DefaultConfig(), opts...)
}

// Close disconnects the backend session and closes the durable store.
func (c *Container) Close() error {
	if c.client != nil {
		c.client.Disconnect()
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			return fmt.Errorf("failed to close offline store: %w", err)
		}
	}
	return nil
}

func (c *Container) Config() *config.Config { return c.config }
func (c *Container) Logger() *zap.Logger { return c.logger }
func (c *Container) CacheService() cache.CacheService { return c.readCache }
func (c *Container) OfflineKV() offline.KV { return c.kv }
func (c *Container) Offline() *offline.Cache { return c.offline }
func (c *Container) Backend() *memory.Backend { return c.backend }
func (c *Container) Client() *remote.Client { return c.client }
func (c *Container) Queries() *query.Orchestrator { return c.queries }
func (c *Container) Prefs() *prefs.Store { return c.prefs }
func (c *Container) Provider() *identity.DevProvider { return c.provider }
func (c *Container) App() *portal.App { return c.app }
