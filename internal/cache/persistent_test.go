// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package cache

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func newTestPersistent(t *testing.T) *Persistent {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPersistentFromDB(db)
}

type cachedListing struct {
	Query string   `json:"query"`
	IDs   []int    `json:"ids"`
	Tags  []string `json:"tags,omitempty"`
}

func TestPersistentRoundTrip(t *testing.T) {
	p := newTestPersistent(t)

	want := cachedListing{Query: "top gun", IDs: []int{744, 361743}}
	if err := p.Set("search:abc", want, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedListing
	ok, err := p.Get("search:abc", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if got.Query != want.Query || len(got.IDs) != 2 || got.IDs[1] != 361743 {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestPersistentMissAndDelete(t *testing.T) {
	p := newTestPersistent(t)

	var dst cachedListing
	ok, err := p.Get("missing", &dst)
	if err != nil || ok {
		t.Errorf("Get(missing) = %v, %v; want false, nil", ok, err)
	}

	if err := p.Set("k", cachedListing{Query: "x"}, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := p.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := p.Get("k", &dst); ok {
		t.Error("entry should be gone after Delete")
	}
	if err := p.Delete("never-set"); err != nil {
		t.Errorf("Delete(never-set) error = %v", err)
	}
}

func TestPersistentCloseDoesNotCloseSharedDB(t *testing.T) {
	p := newTestPersistent(t)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Set("still-open", cachedListing{}, time.Minute); err != nil {
		t.Errorf("shared db should remain usable: %v", err)
	}
}
