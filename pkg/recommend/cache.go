package recommend

import (
	"sync"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
)

// Cache holds the recommendation sequence produced for a user's first page.
// Implementations must never expose a partially written sequence to a
// reader; last write wins on concurrent puts. There is no TTL: entries stay
// until Invalidate is called, and freshness otherwise comes from the daily
// shuffle rollover. Tests can plug in a no-op implementation.
type Cache interface {
	Get(user catalog.UserID) ([]catalog.Book, bool)
	Put(user catalog.UserID, books []catalog.Book)
	Invalidate(user catalog.UserID)
}

// MemoryCache is the default Cache: a mutex-guarded map.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[catalog.UserID][]catalog.Book
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[catalog.UserID][]catalog.Book)}
}

func (c *MemoryCache) Get(user catalog.UserID) ([]catalog.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	books, ok := c.entries[user]
	return books, ok
}

func (c *MemoryCache) Put(user catalog.UserID, books []catalog.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[user] = books
}

// Invalidate drops a user's cached sequence so the next first-page request
// recomputes it.
func (c *MemoryCache) Invalidate(user catalog.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, user)
}

// NopCache disables recommendation caching entirely.
type NopCache struct{}

func (NopCache) Get(catalog.UserID) ([]catalog.Book, bool) { return nil, false }
func (NopCache) Put(catalog.UserID, []catalog.Book)        {}
func (NopCache) Invalidate(catalog.UserID)                 {}
