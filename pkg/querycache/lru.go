package querycache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an in-process LRU with per-entry expiry.
type MemoryCache struct {
	cache *lru.LRU[string, []byte]
}

// NewMemoryCache creates a cache holding at most size entries, each for ttl.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size < 16 {
		size = 16
	}
	return &MemoryCache{cache: lru.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.cache.Get(key)
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	c.cache.Add(key, value)
	return nil
}

func (c *MemoryCache) Backend() string { return "memory" }

// Len reports the number of live entries.
func (c *MemoryCache) Len() int { return c.cache.Len() }

func (c *MemoryCache) Close() error {
	c.cache.Purge()
	return nil
}
