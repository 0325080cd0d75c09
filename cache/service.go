package cache

import (
	"context"

	"github.com/goliatone/go-krishi-portal/internal/cacheinfra"
)

// KeySerializer builds a cache key from a resource name + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(resource string, args ...any) string
}

// Entry is one in-process read result. Invalidation and failures never drop
// the last good Value; they only flag the entry so the next read re-fetches.
type Entry = cacheinfra.Entry

// CacheService is the narrow get/set/invalidate contract the orchestrator
// owns. Implementations must be safe for concurrent use.
type CacheService interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry) error
	// Invalidate marks key stale. Missing keys are ignored.
	Invalidate(ctx context.Context, key string) error
	// Clear drops every entry.
	Clear(ctx context.Context) error
}

// Value is a type-safe accessor for an entry's value.
// A nil interface or a mismatched type yields the zero value and false.
func Value[T any](e Entry) (T, bool) {
	var zero T
	if e.Value == nil {
		return zero, false
	}
	v, ok := e.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
