// Package cache provides the result cache fronting the document store:
// a key -> serialized-value store with per-entry TTL and a bounded entry
// count. TTL is the staleness mechanism; capacity eviction is only a
// safety valve.
package cache

import (
	"context"
	"time"
)

// Cache is the interface the service composes in. Implementations that
// talk to an external backend may fail; the service treats a Get error
// as a miss and logs-and-swallows Set/Delete errors, so a broken cache
// never fails a read or write operation.
type Cache interface {
	// Get returns the cached bytes and whether the key was present and
	// unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
}
