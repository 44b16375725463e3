package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheEntry is one rendered PNG.
type CacheEntry struct {
	PNG       []byte
	ExpiresAt time.Time
}

// Cache memoizes rendered charts for the dashboard. Moving the cutoff slider
// back and forth re-requests the same handful of cutoffs; recomputing the
// chart is cheap but not free at dashboard refresh rates.
//
// The cache sits outside the normalization core: every cache miss is still a
// full, independent recompute of the pure pipeline.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *Cache
var cacheOnce sync.Once

// GetCache returns the global chart cache if caching is enabled via
// CHART_CACHE=true. Returns nil otherwise; a nil *Cache is a no-op.
func GetCache() *Cache {
	if os.Getenv("CHART_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 5 * time.Minute
		if ttlStr := os.Getenv("CHART_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &Cache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached PNG if present and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.PNG, true
}

// Set stores a rendered PNG.
func (c *Cache) Set(key string, pngBytes []byte) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		PNG:       pngBytes,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// CacheKey derives a key from the dataset path, its mtime, and the cutoff,
// so editing the spreadsheet invalidates cached charts.
func CacheKey(dataPath string, maxHour float64) string {
	var mtime int64
	if info, err := os.Stat(dataPath); err == nil {
		mtime = info.ModTime().UnixNano()
	}
	keyStr := fmt.Sprintf("%s:%d:%.6f", dataPath, mtime, maxHour)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
