// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, the CLI default
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: shared cache with a TTL index
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from a URL, so the CLI and server take a single
// --cache flag:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0")
//	c, err := cache.Open(ctx, "file:///tmp/flexline")
//	c, err := cache.Open(ctx, "none")
//
// # Keys
//
// A [Keyer] derives keys from content hashes plus the options that affect
// the output. [ScopedKeyer] prefixes every key for multi-tenant setups.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is (nil, false, nil);
// errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs per entry kind. Layouts are pure functions of their inputs, so they
// live long; artifacts are larger and cheaper to regenerate.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Key types passed to observability hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)
