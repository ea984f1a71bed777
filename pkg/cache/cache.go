// Package cache is the in-process fallback used when redis is disabled.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

type Item struct {
	Value      []byte
	Expiration int64
}

type Cache struct {
	items  map[string]Item
	mu     sync.RWMutex
	hits   atomic.Int64
	misses atomic.Int64
	stop   chan struct{}
	once   sync.Once
	now    func() time.Time
}

// NewCache starts a cache that sweeps expired entries every gcInterval.
func NewCache(gcInterval time.Duration) *Cache {
	cache := &Cache{
		items: make(map[string]Item),
		stop:  make(chan struct{}),
		now:   time.Now,
	}
	if gcInterval > 0 {
		go cache.startGC(gcInterval)
	}
	return cache
}

func (c *Cache) Set(key string, value []byte, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:      value,
		Expiration: c.now().Add(duration).UnixNano(),
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found || c.now().UnixNano() > item.Expiration {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return item.Value, true
}

func (c *Cache) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"keys":   c.Len(),
		"hits":   c.hits.Load(),
		"misses": c.misses.Load(),
	}
}

// Close stops the GC goroutine. It is safe to call more than once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) deleteExpired() {
	now := c.now().UnixNano()
	c.mu.Lock()
	for k, v := range c.items {
		if now > v.Expiration {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}

func (c *Cache) startGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}
