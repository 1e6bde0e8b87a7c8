// Package cache provides byte caching for fetched assets and rendered
// graphics.
//
// Two hot paths use it: hero/logo image fetches (keyed by source URL) and
// finished PNG renders (keyed by a hash of the full render request). Three
// backends are provided:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for the HTTP export service
//   - NullCache: disabled caching, for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
//
// Implementations must treat Get misses and expired entries identically
// (found=false, no error). All methods are safe for concurrent use.
type Cache interface {
	// Get retrieves a value. found is false on miss or expiry.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Set stores a value with a time-to-live. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
