package discogs

import (
	"strings"
	"sync"
	"time"
)

type searchCacheEntry struct {
	resp    *SearchResponse
	expires time.Time
}

type searchCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]searchCacheEntry
	now     func() time.Time
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		ttl:     ttl,
		entries: make(map[string]searchCacheEntry),
		now:     time.Now,
	}
}

func cacheKey(catno string) string {
	return strings.Join(strings.Fields(strings.ToUpper(catno)), " ")
}

func (c *searchCache) get(catno string) (*SearchResponse, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	key := cacheKey(catno)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.resp, true
}

func (c *searchCache) put(catno string, resp *SearchResponse) {
	if c == nil || c.ttl <= 0 || resp == nil {
		return
	}
	c.mu.Lock()
	c.entries[cacheKey(catno)] = searchCacheEntry{resp: resp, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
