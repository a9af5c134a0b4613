// Package refcache memoizes the two reference-table listings (date periods
// and a user's rounds) that back the activity entry form. Entries live for
// 24 hours, and every write to the underlying tables invalidates the
// affected key so listings never serve stale rows.
package refcache

import (
	"fmt"
	"sync"
	"time"
)

const KeyDatePeriods = "date_periods"

// RoundsKey is per user: round listings are owner-scoped.
func RoundsKey(userID uint) string {
	return fmt.Sprintf("rounds:%d", userID)
}

const DefaultTTL = 24 * time.Hour

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time // replaced in tests
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Ref is the process-wide reference-data cache.
var Ref = New(DefaultTTL)

// Remember returns the cached value for key, loading and storing it via
// load on a miss or after expiry. A load error is returned as-is and
// nothing is cached.
func (c *Cache) Remember(key string, load func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		return e.value, nil
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	c.entries[key] = entry{value: v, expiresAt: c.now().Add(c.ttl)}
	return v, nil
}

// Invalidate drops the given keys; the next Remember reloads them.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
