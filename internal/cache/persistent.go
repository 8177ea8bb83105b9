// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinebot/internal/metrics"
)

// persistentKeyPrefix namespaces response entries in BadgerDB.
const persistentKeyPrefix = "resp:"

const persistentCacheName = "persistent"

// Persistent is a JSON-encoded response cache stored in BadgerDB.
// Entries carry a Badger TTL and disappear on their own once it lapses.
type Persistent struct {
	db     *badger.DB
	ownsDB bool
}

// OpenPersistent opens (or creates) a BadgerDB at path.
func OpenPersistent(path string) (*Persistent, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for response cache: %w", err)
	}
	return &Persistent{db: db, ownsDB: true}, nil
}

// NewPersistentFromDB wraps an existing BadgerDB. Close does not close db.
func NewPersistentFromDB(db *badger.DB) *Persistent {
	return &Persistent{db: db}
}

// Get decodes the entry stored under key into dst.
// It reports false, with a nil error, when the key is absent or expired.
func (p *Persistent) Get(key string, dst interface{}) (bool, error) {
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(persistentKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		metrics.CacheMisses.WithLabelValues(persistentCacheName).Inc()
		return false, nil
	case err != nil:
		return false, fmt.Errorf("get cached response: %w", err)
	}
	metrics.CacheHits.WithLabelValues(persistentCacheName).Inc()
	return true, nil
}

// Set stores value under key for ttl.
func (p *Persistent) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cached response: %w", err)
	}

	return p.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(persistentKeyPrefix+key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes key. Missing keys are not an error.
func (p *Persistent) Delete(key string) error {
	err := p.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(persistentKeyPrefix + key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete cached response: %w", err)
	}
	return nil
}

// RunGC rewrites value log files until Badger finds nothing left to reclaim.
func (p *Persistent) RunGC(ratio float64) error {
	for {
		err := p.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("response cache gc: %w", err)
		}
	}
}

// Close closes the database if it was opened by OpenPersistent.
func (p *Persistent) Close() error {
	if !p.ownsDB {
		return nil
	}
	return p.db.Close()
}
