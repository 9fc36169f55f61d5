// Package cache provides pluggable byte caches for pipeline results.
//
// Three implementations are available: FileCache persists entries under
// a directory with TTL expiry, RedisCache stores entries in a Redis
// server for shared deployments, and NullCache disables caching
// entirely while satisfying the interface.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with a TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the payload for key. The boolean reports whether the
	// key was present and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under key. A non-positive TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key, if any.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
