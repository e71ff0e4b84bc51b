package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// EvidenceCache caches fused evidence lists per audience. Entries expire
// after a TTL and are dropped wholesale when the underlying stores change
// (generation bump via Invalidate).
type EvidenceCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	gen     uint64
}

type cacheEntry struct {
	evidence  []string
	timestamp time.Time
	gen       uint64
}

func NewEvidenceCache(maxSize int, ttl time.Duration) *EvidenceCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &EvidenceCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(audience string) string {
	hash := sha256.Sum256([]byte(audience))
	return hex.EncodeToString(hash[:16])
}

func (c *EvidenceCache) Get(audience string) ([]string, bool) {
	key := cacheKey(audience)

	c.mu.RLock()
	entry, exists := c.entries[key]
	currentGen := c.gen
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.gen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.evidence, true
}

func (c *EvidenceCache) Put(audience string, evidence []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(audience)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{evidence: evidence, timestamp: time.Now(), gen: c.gen}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{evidence: evidence, timestamp: time.Now(), gen: c.gen}
	c.order = append(c.order, key)
}

// Invalidate drops all cached evidence. Called after ingestion.
func (c *EvidenceCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.gen++
}

func (c *EvidenceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *EvidenceCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *EvidenceCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *EvidenceCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
