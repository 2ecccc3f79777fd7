package data

import (
	"sync"
	"time"
)

// candleCache is an in-memory TTL cache for kline responses, owned by the
// client that uses it. The engines themselves never cache: keeping
// memoization out here keeps them pure and trivially parallelizable.
type candleCache struct {
	mu    sync.RWMutex
	store map[string]candleCacheEntry
	ttl   time.Duration
}

type candleCacheEntry struct {
	candles   []Candle
	expiresAt time.Time
}

func newCandleCache(ttl time.Duration) *candleCache {
	return &candleCache{
		store: make(map[string]candleCacheEntry),
		ttl:   ttl,
	}
}

func (c *candleCache) get(key string) ([]Candle, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.candles, true
}

func (c *candleCache) set(key string, candles []Candle) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// Drop expired entries opportunistically so the map doesn't grow
	// unbounded across a long session.
	now := time.Now()
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
		}
	}
	c.store[key] = candleCacheEntry{candles: candles, expiresAt: now.Add(c.ttl)}
}
