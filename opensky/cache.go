// opensky/cache.go
package opensky

import (
	"sync"
	"time"

	"github.com/skyden/airdemand/models"
)

type cacheKey struct {
	Airport string
	Begin   int64
	End     int64
}

type cacheEntry struct {
	records  []models.RawFlightRecord
	storedAt time.Time
}

// responseCache is a process-local, time-boxed cache of departure
// responses. Entries expire after the TTL; concurrent queries with the same
// key within the window share the cached response.
type responseCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *responseCache) get(key cacheKey) ([]models.RawFlightRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.records, true
}

func (c *responseCache) put(key cacheKey, records []models.RawFlightRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop anything already expired so the map cannot grow unbounded.
	now := time.Now()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{records: records, storedAt: now}
}
