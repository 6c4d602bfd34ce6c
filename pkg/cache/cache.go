// Package cache defines the response-cache capability consumed by the
// query submission pipeline, plus in-memory and on-disk implementations.
//
// Caching is best effort: the pipeline never fails a query because a cache
// write failed, so Set does not return an error; implementations log
// failures instead. Get and Set must be atomic per key, but callers get no
// cross-call coordination — two concurrent queries for the same key may
// both miss and both hit the network.
package cache

import "time"

// Cache stores raw response bodies under deterministic query keys with a
// server-supplied time-to-live.
type Cache interface {
	// Get returns the stored body for key, or false when the key is
	// absent or its entry has expired.
	Get(key string) ([]byte, bool)

	// Set stores body under key for the given TTL, replacing any
	// existing entry. A non-positive TTL stores nothing.
	Set(key string, body []byte, ttl time.Duration)
}

// Noop is the absent-cache implementation: every lookup misses and every
// store is discarded. Inject it when caching is disabled.
type Noop struct{}

// Get always reports a miss.
func (Noop) Get(string) ([]byte, bool) { return nil, false }

// Set discards the entry.
func (Noop) Set(string, []byte, time.Duration) {}
