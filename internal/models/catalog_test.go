// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package models

import "testing"

func TestSummaryLabel(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{
			name:    "movie with year",
			summary: Summary{ID: 114, Kind: KindMovie, Title: "Pretty Woman", Year: 1990},
			want:    "id: 114 title: 'Pretty Woman' (1990)",
		},
		{
			name:    "movie without year",
			summary: Summary{ID: 7, Kind: KindMovie, Title: "Untitled"},
			want:    "id: 7 title: 'Untitled' (unknown year)",
		},
		{
			name:    "person with department",
			summary: Summary{ID: 1204, Kind: KindPerson, Title: "Julia Roberts", Department: "Acting"},
			want:    "id: 1204 title: 'Julia Roberts' (Acting)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYearFromDate(t *testing.T) {
	tests := map[string]int{
		"1990-03-23": 1990,
		"2022":       2022,
		"":           0,
		"19":         0,
		"abcd-01-01": 0,
	}
	for in, want := range tests {
		if got := YearFromDate(in); got != want {
			t.Errorf("YearFromDate(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCatalogItemTrailer(t *testing.T) {
	item := &CatalogItem{Videos: []Video{
		{Key: "a", Type: "Teaser"},
		{Key: "b", Type: "Trailer"},
	}}
	v, ok := item.Trailer()
	if !ok || v.Key != "b" {
		t.Errorf("Trailer() = %+v, %v; want key b", v, ok)
	}

	item = &CatalogItem{Videos: []Video{{Key: "c", Type: "Clip"}}}
	v, ok = item.Trailer()
	if !ok || v.Key != "c" {
		t.Errorf("Trailer() fallback = %+v, %v; want key c", v, ok)
	}

	if _, ok := (&CatalogItem{}).Trailer(); ok {
		t.Error("Trailer() on item without videos should report false")
	}
}

func TestWatchlistItemKey(t *testing.T) {
	movie := WatchlistItem{ID: 1399, Kind: KindMovie}
	show := WatchlistItem{ID: 1399, Kind: KindTV}
	if movie.Key() == show.Key() {
		t.Errorf("movie and show with same id share key %q", movie.Key())
	}
}
