// Package cache contains the in-memory caches used by the backend
package cache

import (
	"sync"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
	lru "github.com/hashicorp/golang-lru"
)

// LRU represents a LRU cache of decoded objects, indexed by oid
type LRU struct {
	cache *lru.Cache
	mu    sync.Mutex
}

// NewLRU creates a new LRU Cache that holds up to maxEntries objects.
// If maxEntries is below 1, 1 will be used
func NewLRU(maxEntries int) *LRU {
	if maxEntries < 1 {
		maxEntries = 1
	}
	// lru.New only fails on a size <= 0
	cache, _ := lru.New(maxEntries) //nolint:errcheck
	return &LRU{
		cache: cache,
	}
}

// Get looks up an object from the cache.
func (c *LRU) Get(oid githash.Oid) (o *object.Object, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(oid)
	if !ok {
		return nil, false
	}
	o, ok = v.(*object.Object)
	return o, ok
}

// Add adds an object to the cache.
func (c *LRU) Add(o *object.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(o.ID(), o)
}

// Clear purges all stored items from the cache.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

// Len returns the number of items in the cache.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Len()
}
