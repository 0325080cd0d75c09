// Package cache is the in-process read cache the query orchestrator keeps
// its results in.
//
// Every key holds an Entry. Invalidation and failed reads never drop the
// last good value; they flag the entry so the next read goes back to the
// backend while callers can still show what they had.
//
// Keys are built by a KeySerializer:
//
//	keys := cache.NewDefaultKeySerializer()
//	keys.SerializeKey("mandiPrices")            // "mandiPrices"
//	keys.SerializeKey("mandiPrice", uint64(3))  // "mandiPrice::3"
//
// The default CacheService is backed by sturdyc; see NewCacheService.
package cache
