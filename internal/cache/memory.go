package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache is the in-process Cache backed by ttlcache. Reads do not
// extend an entry's TTL (a hit must stay semantically equal to the store
// read that populated it), but they do refresh its recency for capacity
// eviction, so a full cache evicts the least-recently-used entry.
type MemoryCache struct {
	items *ttlcache.Cache[string, []byte]
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		items: ttlcache.New[string, []byte](
			ttlcache.WithCapacity[string, []byte](uint64(maxEntries)),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

// Start runs the expired-entry janitor. Expired entries are never
// returned either way; the janitor only reclaims their memory.
func (c *MemoryCache) Start() {
	go c.items.Start()
}

func (c *MemoryCache) Stop() {
	c.items.Stop()
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := c.items.Get(key)
	if item == nil {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.items.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *MemoryCache) DeleteMany(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Len reports live (unexpired) entries.
func (c *MemoryCache) Len() int {
	return c.items.Len()
}
