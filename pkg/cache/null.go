package cache

import (
	"context"
	"time"
)

// NullCache is a Cache that stores nothing. Every Get is a miss and
// every write succeeds without effect. Useful for disabling caching
// without branching at call sites.
type NullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() *NullCache { return &NullCache{} }

// Get implements Cache. It always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set implements Cache. It discards the payload.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete implements Cache.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close implements Cache.
func (*NullCache) Close() error { return nil }
