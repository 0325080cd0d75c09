// Package query coordinates every read and write the portal makes against
// the backend.
//
// Reads are cached in-process per key and shared between concurrent callers.
// List reads are also mirrored to the offline cache. Writes go straight to
// the backend and, once it reports success, invalidate exactly the keys
// whose content they could have changed before returning to the caller.
package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-krishi-portal/cache"
	"github.com/goliatone/go-krishi-portal/offline"
	"github.com/goliatone/go-krishi-portal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrDisabled is returned by reads issued before a session is ready.
	// It matches remote.ErrSessionUnavailable.
	ErrDisabled = fmt.Errorf("query: disabled until a session is ready: %w", remote.ErrSessionUnavailable)

	// ErrSessionReset is returned to readers whose result arrived after the
	// session they were issued in had ended. The result is not applied.
	ErrSessionReset = errors.New("query: session ended before the read completed")
)

// Backend is the remote surface the orchestrator drives. *remote.Client
// satisfies it.
type Backend interface {
	remote.Service
	Ready() bool
}

// Orchestrator owns the in-process read cache and the offline mirror.
type Orchestrator struct {
	backend Backend
	cache   cache.CacheService
	offline *offline.Cache
	reach   offline.Reachability
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group

	// mu makes each read completion and each write's invalidation set atomic
	mu      sync.Mutex
	epoch   uint64
	gens    map[string]uint64
	written map[string]uint64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithReachability sets the connectivity signal used by the offline fallback.
func WithReachability(r offline.Reachability) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.reach = r
		}
	}
}

// WithClock overrides the time source stamped on cache entries.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Orchestrator. Both stores are owned by the caller and may
// be shared with other components.
func New(backend Backend, readCache cache.CacheService, offlineCache *offline.Cache, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend: backend,
		cache:   readCache,
		offline: offlineCache,
		reach:   offline.AlwaysOnline,
		logger:  zap.NewNop(),
		now:     time.Now,
		gens:    make(map[string]uint64),
		written: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Enabled reports whether reads may run.
func (o *Orchestrator) Enabled() bool {
	return o.backend.Ready()
}

// Backend returns the remote surface reads and writes go through.
func (o *Orchestrator) Backend() Backend {
	return o.backend
}

// Offline returns the offline mirror.
func (o *Orchestrator) Offline() *offline.Cache {
	return o.offline
}

// ResetSession discards everything tied to the current session. Reads still
// in flight complete but are not applied.
func (o *Orchestrator) ResetSession(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.epoch++
	clear(o.gens)
	clear(o.written)
	if err := o.cache.Clear(ctx); err != nil {
		o.logger.Warn("read cache clear failed", zap.Error(err))
	}
	o.logger.Debug("query session reset", zap.Uint64("epoch", o.epoch))
}

// Invalidate marks keys stale so their next read goes to the backend.
// All keys are flagged in one step.
func (o *Orchestrator) Invalidate(ctx context.Context, keys ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, key := range keys {
		o.gens[key]++
		if err := o.cache.Invalidate(ctx, key); err != nil {
			o.logger.Warn("read cache invalidate failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Cached returns the in-process entry for key without touching the backend.
func (o *Orchestrator) Cached(ctx context.Context, key string) (cache.Entry, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cache.Get(ctx, key)
}

type flight struct {
	key    string
	mirror string
	gen    uint64
	epoch  uint64
}

// read serves key from the cache when fresh, otherwise joins or starts the
// flight for the key's current generation. mirror names the offline
// resource the result is copied to, or is empty.
func read[T any](ctx context.Context, o *Orchestrator, key, mirror string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if !o.backend.Ready() {
		return zero, ErrDisabled
	}

	o.mu.Lock()
	if e, ok := o.cache.Get(ctx, key); ok && e.Fresh() {
		if v, ok := cache.Value[T](e); ok {
			o.mu.Unlock()
			return v, nil
		}
	}
	f := flight{key: key, mirror: mirror, gen: o.gens[key], epoch: o.epoch}
	o.mu.Unlock()

	flightKey := key + "@" + strconv.FormatUint(f.epoch, 10) + "." + strconv.FormatUint(f.gen, 10)
	detached := context.WithoutCancel(ctx)
	ch := o.group.DoChan(flightKey, func() (any, error) {
		o.logger.Debug("remote read", zap.String("key", key), zap.Uint64("gen", f.gen))
		v, err := fetch(detached)
		if applied := o.complete(detached, f, v, err); !applied {
			return v, ErrSessionReset
		}
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// complete applies a finished flight. It reports false when the session the
// flight belonged to has ended.
func (o *Orchestrator) complete(ctx context.Context, f flight, v any, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if f.epoch != o.epoch {
		o.logger.Debug("discarding read from ended session", zap.String("key", f.key))
		return false
	}
	if o.written[f.key] > f.gen {
		// a newer generation already landed
		return true
	}

	prev, _ := o.cache.Get(ctx, f.key)
	entry := cache.Entry{Value: v, UpdatedAt: o.now(), Stale: f.gen != o.gens[f.key]}
	if err != nil {
		entry = prev
		entry.Err = err
	}
	if serr := o.cache.Set(ctx, f.key, entry); serr != nil {
		o.logger.Warn("read cache set failed", zap.String("key", f.key), zap.Error(serr))
	}
	o.written[f.key] = f.gen

	if err != nil {
		o.logger.Debug("remote read failed", zap.String("key", f.key), zap.Error(err))
		return true
	}
	if f.mirror != "" && o.offline != nil {
		o.offline.Store(ctx, f.mirror, v)
	}
	return true
}
