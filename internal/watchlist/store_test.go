// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package watchlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinebot/internal/models"
)

func newBadgerTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStore(db)
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": newBadgerTestStore(t),
	}
}

func item(id int, title string, added time.Time) models.WatchlistItem {
	return models.WatchlistItem{ID: id, Kind: models.KindMovie, Title: title, AddedAt: added}
}

func TestStoreAddDeduplicates(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			added, err := s.Add(ctx, "alice", item(603, "The Matrix", base))
			if err != nil || !added {
				t.Fatalf("first Add() = %v, %v", added, err)
			}
			added, err = s.Add(ctx, "alice", item(603, "The Matrix", base.Add(time.Hour)))
			if err != nil || added {
				t.Errorf("duplicate Add() = %v, %v; want false", added, err)
			}

			tv := models.WatchlistItem{ID: 603, Kind: models.KindTV, Title: "Same id, other kind", AddedAt: base.Add(time.Minute)}
			if added, _ := s.Add(ctx, "alice", tv); !added {
				t.Error("same id with a different kind should be a new item")
			}

			if n, err := s.Count(ctx, "alice"); err != nil || n != 2 {
				t.Errorf("Count() = %d, %v; want 2", n, err)
			}
		})
	}
}

func TestStoreListOrderAndOwnerIsolation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, _ = s.Add(ctx, "alice", item(2, "Second", base.Add(2*time.Minute)))
			_, _ = s.Add(ctx, "alice", item(1, "First", base.Add(time.Minute)))
			_, _ = s.Add(ctx, "bob", item(3, "Bob's", base))
			_, _ = s.Add(ctx, "alice2", item(4, "Prefix neighbor", base))

			got, err := s.List(ctx, "alice")
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("List() = %+v, want 2 items", got)
			}
			if name == "badger" && (got[0].ID != 1 || got[1].ID != 2) {
				t.Errorf("badger order = %d, %d; want oldest first", got[0].ID, got[1].ID)
			}
			if name == "memory" && (got[0].ID != 2 || got[1].ID != 1) {
				t.Errorf("memory order = %d, %d; want insertion order", got[0].ID, got[1].ID)
			}

			empty, err := s.List(ctx, "carol")
			if err != nil || len(empty) != 0 {
				t.Errorf("List(carol) = %v, %v", empty, err)
			}
		})
	}
}

func TestStoreConcurrentAddsOfSameItem(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup
			var mu sync.Mutex
			added := 0

			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ok, err := s.Add(ctx, "alice", item(550, "Fight Club", time.Now()))
					if err != nil {
						// Badger reports conflicting transactions; the loser simply did not add.
						return
					}
					if ok {
						mu.Lock()
						added++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			if added != 1 {
				t.Errorf("item added %d times, want 1", added)
			}
			if n, _ := s.Count(ctx, "alice"); n != 1 {
				t.Errorf("Count() = %d, want 1", n)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("memory", "")
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(memory) = %T", s)
	}

	dir := t.TempDir()
	s, err = Open("badger", dir)
	if err != nil {
		t.Fatalf("Open(badger) error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := Open("redis", ""); err == nil {
		t.Error("Open(redis) should fail")
	}
}
