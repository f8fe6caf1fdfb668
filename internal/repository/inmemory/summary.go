package inmemory

import (
	"sync"
	"time"

	summarydomain "fittrack-go/internal/domain/summary"
)

type SummaryCache struct {
	mu    sync.RWMutex
	items map[summarydomain.CacheKey]summaryItem
	now   func() time.Time
}

type summaryItem struct {
	value     summarydomain.Summary
	expiresAt time.Time
}

func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		items: make(map[summarydomain.CacheKey]summaryItem),
		now:   time.Now,
	}
}

func (c *SummaryCache) Get(key summarydomain.CacheKey) (summarydomain.Summary, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return summarydomain.Summary{}, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return summarydomain.Summary{}, false
	}

	return item.value, true
}

func (c *SummaryCache) Set(key summarydomain.CacheKey, value summarydomain.Summary, ttl time.Duration) {
	if ttl <= 0 {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.items[key] = summaryItem{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *SummaryCache) DeleteUser(userID string) {
	c.mu.Lock()
	for key := range c.items {
		if key.UserID == userID {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
}

func (c *SummaryCache) Clear() {
	c.mu.Lock()
	c.items = make(map[summarydomain.CacheKey]summaryItem)
	c.mu.Unlock()
}

func (c *SummaryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
