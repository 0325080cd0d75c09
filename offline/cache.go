// Package offline keeps the last good copy of each list resource in durable
// storage so the portal can show it while the backend is unreachable.
//
// Every resource occupies two keys: cache_<resource> holds the value and
// cache_<resource>_timestamp the epoch milliseconds of the write. Storage is
// best effort. Write failures are logged and swallowed, and anything that
// cannot be read back intact is reported as absent.
package offline

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	keyPrefix       = "cache_"
	timestampSuffix = "_timestamp"
)

var errChecksum = errors.New("offline: checksum mismatch")

// ValueKey returns the storage key of resource's value.
func ValueKey(resource string) string {
	return keyPrefix + resource
}

// TimestampKey returns the storage key of resource's write time.
func TimestampKey(resource string) string {
	return keyPrefix + resource + timestampSuffix
}

type envelope struct {
	Checksum uint64 `msgpack:"c"`
	Payload  []byte `msgpack:"p"`
}

// Cache reads and writes resources through a KV.
type Cache struct {
	kv     KV
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Cache over kv.
func New(kv KV, opts ...Option) *Cache {
	c := &Cache{kv: kv, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store overwrites resource and its timestamp in one batch.
func (c *Cache) Store(ctx context.Context, resource string, value any) {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		c.logger.Warn("offline cache encode failed", zap.String("resource", resource), zap.Error(err))
		return
	}
	data, err := msgpack.Marshal(envelope{Checksum: xxhash.Sum64(payload), Payload: payload})
	if err != nil {
		c.logger.Warn("offline cache encode failed", zap.String("resource", resource), zap.Error(err))
		return
	}

	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	err = c.kv.SetMany(ctx, map[string][]byte{
		ValueKey(resource):     data,
		TimestampKey(resource): []byte(ts),
	})
	if err != nil {
		c.logger.Warn("offline cache write failed", zap.String("resource", resource), zap.Error(err))
	}
}

// Load decodes resource into dest and reports whether it succeeded.
func (c *Cache) Load(ctx context.Context, resource string, dest any) bool {
	data, ok, err := c.kv.Get(ctx, ValueKey(resource))
	if err != nil {
		c.logger.Warn("offline cache read failed", zap.String("resource", resource), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := decode(data, dest); err != nil {
		c.logger.Debug("offline cache entry unreadable", zap.String("resource", resource), zap.Error(err))
		return false
	}
	return true
}

// Timestamp returns when resource was last stored.
func (c *Cache) Timestamp(ctx context.Context, resource string) (time.Time, bool) {
	data, ok, err := c.kv.Get(ctx, TimestampKey(resource))
	if err != nil || !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Resources lists the resources that have a stored value.
func (c *Cache) Resources(ctx context.Context) []string {
	keys, err := c.kv.Keys(ctx, keyPrefix)
	if err != nil {
		c.logger.Warn("offline cache scan failed", zap.Error(err))
		return nil
	}
	var out []string
	for _, k := range keys {
		if strings.HasSuffix(k, timestampSuffix) {
			continue
		}
		out = append(out, strings.TrimPrefix(k, keyPrefix))
	}
	return out
}

// LoadAs is the typed form of Load.
func LoadAs[T any](ctx context.Context, c *Cache, resource string) (T, bool) {
	var v T
	if !c.Load(ctx, resource, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

func decode(data []byte, dest any) error {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return err
	}
	if xxhash.Sum64(env.Payload) != env.Checksum {
		return errChecksum
	}
	return msgpack.Unmarshal(env.Payload, dest)
}
