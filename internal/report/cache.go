package report

import (
	"sync"
	"time"
)

const chartCacheTTL = 60 * time.Second

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

type chartCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newChartCache() *chartCache {
	return &chartCache{entries: map[string]cacheEntry{}, now: time.Now}
}

func (c *chartCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Before(entry.createdAt.Add(chartCacheTTL)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.entries, key)
	}
	return nil, false
}

func (c *chartCache) set(key string, img []byte) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{createdAt: c.now(), image: img}
	c.mu.Unlock()
}
