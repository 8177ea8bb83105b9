// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package models

import (
	"fmt"
	"time"
)

// WatchlistItem is a saved title.
type WatchlistItem struct {
	ID        int       `json:"id"`
	Kind      MediaKind `json:"kind"`
	Title     string    `json:"title"`
	Year      int       `json:"year,omitempty"`
	PosterURL string    `json:"poster_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Key returns the dedup key for the item; a movie and a show may share an id.
func (w WatchlistItem) Key() string {
	return fmt.Sprintf("%s:%d", w.Kind, w.ID)
}

// NewWatchlistItem builds a watchlist entry from a fetched item.
func NewWatchlistItem(item *CatalogItem, now time.Time) WatchlistItem {
	return WatchlistItem{
		ID:        item.ID,
		Kind:      item.Kind,
		Title:     item.Title,
		Year:      item.Year,
		PosterURL: item.PosterURL,
		AddedAt:   now.UTC(),
	}
}
