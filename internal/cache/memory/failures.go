package memory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// FailureCache remembers recent retrieval failures per repository URL so a
// repository that just failed to clone is not cloned again within ttl.
// A nil *FailureCache is a valid, disabled cache.
type FailureCache struct {
	lru *expirable.LRU[string, error]
}

func NewFailureCache(maxEntries int, ttl time.Duration) *FailureCache {
	if maxEntries <= 0 || ttl <= 0 {
		return nil
	}
	return &FailureCache{lru: expirable.NewLRU[string, error](maxEntries, nil, ttl)}
}

func (c *FailureCache) Get(key string) (error, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *FailureCache) Add(key string, err error) {
	if c == nil || err == nil {
		return
	}
	c.lru.Add(key, err)
}

func (c *FailureCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
