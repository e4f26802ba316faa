// Package cache provides the byte-level caches used for feed responses and
// loaded datasets.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: shared cache for multiple API instances
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] so that every component agrees on the format.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLHTTP applies to raw feed responses. Past feed days do not change,
	// so responses are kept for a day.
	TTLHTTP = 24 * time.Hour

	// TTLDataset applies to normalized datasets.
	TTLDataset = 6 * time.Hour
)

// Cache stores opaque byte values with a per-entry TTL.
// A TTL of 0 means the entry does not expire.
type Cache interface {
	// Get returns the value for key. hit is false on a miss or an expired
	// entry; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
