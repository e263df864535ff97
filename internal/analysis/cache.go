package analysis

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoized file signals
const DefaultCacheSize = 1024

// Cache memoizes signals by CacheKey. Implementations must be safe for
// concurrent use; writes for one key always carry the same value.
type Cache interface {
	Get(key string) (Signal, bool)
	Add(key string, s Signal)
}

// CacheKey identifies a file by path and content length
func CacheKey(path string, contentLen int) string {
	return fmt.Sprintf("%s-%d", path, contentLen)
}

// LRUCache is a size-bounded Cache
type LRUCache struct {
	entries *lru.Cache[string, Signal]
}

// NewLRUCache creates a cache holding at most size signals
func NewLRUCache(size int) (*LRUCache, error) {
	entries, err := lru.New[string, Signal](size)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &LRUCache{entries: entries}, nil
}

// Get returns the signal stored under key
func (c *LRUCache) Get(key string) (Signal, bool) {
	return c.entries.Get(key)
}

// Add stores s under key
func (c *LRUCache) Add(key string, s Signal) {
	c.entries.Add(key, s)
}

// Len returns the number of cached signals
func (c *LRUCache) Len() int {
	return c.entries.Len()
}
