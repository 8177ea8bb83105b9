// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

// Package cache provides the response caches used by the metadata gateway.
//
// Cache is a process-wide, thread-safe TTL map with optional LRU bounding.
// Persistent is a BadgerDB-backed second tier that survives restarts and lets
// Badger expire entries natively.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinebot/internal/metrics"
)

const defaultCleanupInterval = 5 * time.Minute

// Config configures a Cache.
type Config struct {
	// Name labels the cache in metrics (cache_type).
	Name string

	// TTL is the default time-to-live used by Set.
	TTL time.Duration

	// MaxEntries bounds the cache; the least recently used entry is evicted
	// when it is exceeded. 0 means unbounded.
	MaxEntries int

	// CleanupInterval is how often expired entries are swept. Default 5m.
	CleanupInterval time.Duration
}

// entry is a node in the recency list.
type entry struct {
	key       string
	data      interface{}
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// Cache provides a thread-safe in-memory cache with TTL support.
// head.next is the most recently used entry, tail.prev the least.
type Cache struct {
	mu      sync.Mutex
	name    string
	ttl     time.Duration
	max     int
	entries map[string]*entry
	head    *entry
	tail    *entry
	stats   Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache and starts its background cleanup goroutine.
// Call Close to stop the goroutine.
//
// Example:
//
//	c := cache.New(cache.Config{Name: "gateway", TTL: time.Hour, MaxEntries: 10000})
//	defer c.Close()
//	c.Set("key", value)
//	if data, ok := c.Get("key"); ok {
//	    // Use cached data
//	}
func New(cfg Config) *Cache {
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaultCleanupInterval
	}

	c := &Cache{
		name:    cfg.Name,
		ttl:     cfg.TTL,
		max:     cfg.MaxEntries,
		entries: make(map[string]*entry),
		head:    &entry{},
		tail:    &entry{},
		stats:   Stats{LastCleanup: time.Now()},
		stop:    make(chan struct{}),
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	go c.cleanupLoop(cfg.CleanupInterval)
	return c
}

// Get retrieves a value. Expired entries are removed and count as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.recordMiss()
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.unlink(e)
		c.recordMiss()
		c.recordEviction(1)
		return nil, false
	}

	c.moveToFront(e)
	c.recordHit()
	return e.data, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL, overwriting any existing entry.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	if e, ok := c.entries[key]; ok {
		e.data = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, data: value, expiresAt: expiresAt}
	c.pushFront(e)
	c.entries[key] = e

	for c.max > 0 && len(c.entries) > c.max {
		c.unlink(c.tail.prev)
		c.recordEviction(1)
	}
	c.updateSize()
}

// Delete removes a single entry. Missing keys are a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.unlink(e)
		c.recordEviction(1)
		c.updateSize()
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(c.entries))
	c.entries = make(map[string]*entry)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.recordEviction(n)
	c.updateSize()
}

// Len returns the number of stored entries, including ones not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes all expired entries.
func (c *Cache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	var evicted int64
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.unlink(e)
			evicted++
		}
		e = prev
	}
	c.recordEviction(evicted)
	c.updateSize()
	c.stats.LastCleanup = now
}

// List helpers; callers hold c.mu.

func (c *Cache) pushFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.pushFront(e)
}

func (c *Cache) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.entries, e.key)
}

func (c *Cache) recordHit() {
	c.stats.Hits++
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache) recordMiss() {
	c.stats.Misses++
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func (c *Cache) recordEviction(n int64) {
	if n == 0 {
		return
	}
	c.stats.Evictions += n
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}

func (c *Cache) updateSize() {
	c.stats.TotalKeys = int64(len(c.entries))
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.entries)))
}

// GenerateKey creates a cache key from an operation name and its parameters.
// Parameters are serialized to JSON and hashed, so equal parameter values
// always produce equal keys.
func GenerateKey(op string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", op, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", op, hash[:16])
}
