// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

// Package watchlist stores the titles each owner has saved for later.
package watchlist

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tomtom215/cinebot/internal/models"
)

// Store persists watchlists keyed by owner. Items are unique per owner by
// kind and id.
type Store interface {
	// Add saves item for owner. It reports false, without error, when the
	// item is already saved.
	Add(ctx context.Context, owner string, item models.WatchlistItem) (bool, error)

	// List returns the owner's items, oldest first.
	List(ctx context.Context, owner string) ([]models.WatchlistItem, error)

	// Count returns how many items the owner has saved.
	Count(ctx context.Context, owner string) (int, error)

	Close() error
}

// Store backends.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Open returns the store named by backend. A badger store opens its own
// database at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown watchlist store %q", backend)
	}
}

// MemoryStore keeps watchlists in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string][]models.WatchlistItem
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[string][]models.WatchlistItem)}
}

// Add saves item for owner unless it is already saved.
func (s *MemoryStore) Add(_ context.Context, owner string, item models.WatchlistItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	if slices.ContainsFunc(s.lists[owner], func(w models.WatchlistItem) bool { return w.Key() == key }) {
		return false, nil
	}
	s.lists[owner] = append(s.lists[owner], item)
	return true, nil
}

// List returns a copy of the owner's items in insertion order.
func (s *MemoryStore) List(_ context.Context, owner string) ([]models.WatchlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lists[owner]), nil
}

// Count returns the number of saved items.
func (s *MemoryStore) Count(_ context.Context, owner string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists[owner]), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
