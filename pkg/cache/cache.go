// Package cache stores computed sort results and rendered graphs.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: stores nothing
//
// [Open] picks one from a [config.CacheConfig]. [Instrument] wraps any
// backend so hits, misses and writes reach the registered
// observability.CacheHooks.
//
// # Keys
//
// A [Keyer] derives keys from a scene hash plus the options that affect the
// cached value. [NewScopedKeyer] prefixes every key, to keep tenants or
// versions apart.
//
// [config.CacheConfig]: github.com/matzehuels/isosort/pkg/config.CacheConfig
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}
