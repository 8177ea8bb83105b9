// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration, max int) *Cache {
	t.Helper()
	c := New(Config{Name: "test", TTL: ttl, MaxEntries: max})
	t.Cleanup(c.Close)
	return c
}

func TestCacheBasicOperations(t *testing.T) {
	c := newTestCache(t, time.Minute, 0)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond, 0)

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheSetWithTTLOverridesDefault(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond, 0)

	c.SetWithTTL("genres", []string{"Action"}, time.Hour)
	c.Set("search", "short")

	time.Sleep(80 * time.Millisecond)

	if _, ok := c.Get("genres"); !ok {
		t.Error("long-TTL entry should survive")
	}
	if _, ok := c.Get("search"); ok {
		t.Error("default-TTL entry should expire")
	}
}

func TestCacheMaxEntriesEvictsLeastRecentlyUsed(t *testing.T) {
	c := newTestCache(t, time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a is now most recent
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCacheOverwriteDoesNotGrow(t *testing.T) {
	c := newTestCache(t, time.Minute, 0)

	c.Set("k", 1)
	c.Set("k", 2)

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("Get(k) = %v, want 2", v)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := newTestCache(t, time.Minute, 0)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Delete("a")
	c.Delete("missing")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be deleted")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if got := c.GetStats().Evictions; got != 3 {
		t.Errorf("Evictions = %d, want 3", got)
	}

	// The list must still be usable after Clear.
	c.Set("d", 4)
	if _, ok := c.Get("d"); !ok {
		t.Error("d should exist after Clear")
	}
}

func TestCacheStatsAndHitRate(t *testing.T) {
	c := newTestCache(t, time.Minute, 0)

	if c.HitRate() != 0 {
		t.Errorf("HitRate() with no operations = %v, want 0", c.HitRate())
	}

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 3/1", stats.Hits, stats.Misses)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if got := c.HitRate(); got != 75.0 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestCacheManualCleanup(t *testing.T) {
	c := newTestCache(t, 30*time.Millisecond, 0)

	c.Set("short1", 1)
	c.Set("short2", 2)
	c.SetWithTTL("long", 3, time.Hour)

	time.Sleep(50 * time.Millisecond)
	c.cleanup()

	if c.Len() != 1 {
		t.Errorf("Len() after cleanup = %d, want 1", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", stats.Evictions)
	}
	if stats.LastCleanup.IsZero() {
		t.Error("LastCleanup should be set")
	}
}

func TestCacheCleanupLoop(t *testing.T) {
	c := New(Config{Name: "test", TTL: 10 * time.Millisecond, CleanupInterval: 20 * time.Millisecond})
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(100 * time.Millisecond)

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after background cleanup", c.Len())
	}
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := New(Config{TTL: time.Minute})
	c.Close()
	c.Close()
}

func TestCacheConcurrency(t *testing.T) {
	c := newTestCache(t, time.Minute, 50)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*31+i)%100)
				c.Set(key, i)
				c.Get(key)
				if i%17 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d, want <= 50", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		Kind  string
		Query string
		Year  int
	}

	k1 := GenerateKey("search", params{"movie", "pretty woman", 1990})
	k2 := GenerateKey("search", params{"movie", "pretty woman", 1990})
	k3 := GenerateKey("search", params{"movie", "pretty woman", 0})
	k4 := GenerateKey("item", params{"movie", "pretty woman", 1990})

	if k1 != k2 {
		t.Error("equal params should produce equal keys")
	}
	if k1 == k3 {
		t.Error("different filters should produce different keys")
	}
	if k1 == k4 {
		t.Error("different operations should produce different keys")
	}
	if len(k1) != len("search:")+32 {
		t.Errorf("key %q has unexpected length", k1)
	}
}

func TestGenerateKeyUnmarshalable(t *testing.T) {
	key := GenerateKey("op", make(chan int))
	if key == "" {
		t.Error("fallback key should not be empty")
	}
}
