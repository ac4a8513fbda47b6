// Package cache stores rendered artifacts and parsed catalogues.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for the HTTP server or several
//     machines rendering the same catalogue
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer] and always include a hash of the catalogue
// source, so editing the TTL file invalidates everything derived from it
// without an explicit purge.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLCatalogue = 7 * 24 * time.Hour
	TTLArtifact  = 24 * time.Hour
	TTLPage      = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
