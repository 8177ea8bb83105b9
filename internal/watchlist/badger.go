// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinebot/internal/models"
)

// Keys are watchlist:<owner>:<kind>:<id>.
const watchlistKeyPrefix = "watchlist:"

// BadgerStore implements Store on BadgerDB so watchlists survive restarts.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a database at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open watchlist store: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore uses an already open database. Close leaves it open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func ownerPrefix(owner string) []byte {
	return []byte(watchlistKeyPrefix + owner + ":")
}

func itemKey(owner string, item models.WatchlistItem) []byte {
	return append(ownerPrefix(owner), item.Key()...)
}

// Add saves item for owner unless it is already saved. The existence check
// and write share one transaction.
func (s *BadgerStore) Add(ctx context.Context, owner string, item models.WatchlistItem) (bool, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("marshal watchlist item: %w", err)
	}

	added := false
	err = s.db.Update(func(txn *badger.Txn) error {
		key := itemKey(owner, item)
		_, err := txn.Get(key)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("get watchlist item: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set watchlist item: %w", err)
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// List returns the owner's items ordered by when they were added.
func (s *BadgerStore) List(ctx context.Context, owner string) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := ownerPrefix(owner)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var item models.WatchlistItem
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("decode watchlist item: %w", err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

// Count returns the number of saved items without decoding them.
func (s *BadgerStore) Count(ctx context.Context, owner string) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := ownerPrefix(owner)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC reclaims value log space left by overwritten entries.
func (s *BadgerStore) RunGC(ratio float64) error {
	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("watchlist gc: %w", err)
		}
	}
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
