// Package cache stores generated artifacts keyed by a hash of their inputs.
//
// Generation is a pure function of the intent graph and the per-node
// configuration, so a script produced once can be served again for the same
// inputs. Three backends are provided:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a local directory
//   - [RedisCache]: a shared cache for teams running many batch jobs
//
// Keys are produced by a [Keyer] so that callers never build key strings by
// hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes. Scripts depend only on their key inputs, so the TTL just
// bounds the size of a shared cache.
const (
	TTLScript     = 30 * 24 * time.Hour
	TTLComponents = 30 * 24 * time.Hour
)
