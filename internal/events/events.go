// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package events defines the one-way view events pushed to the presentation layer.

Every event is self-contained: it carries everything needed to render a view,
never a delta against a previous one. Events are tagged variants; the Type is
drawn from a closed set and each Type has exactly one payload struct.

Wire format (shared with the websocket transport):

	{"type": "movie_search_results", "data": {...}}

Listing payloads carry 1-based positions and stable ids so that a later turn can
say "the third one" or "id 114" and resolve to the same entity.
*/
package events

import (
	"github.com/tomtom215/cinebot/internal/models"
)

// Type is the event tag.
type Type string

const (
	TypeMovieSearchResults  Type = "movie_search_results"
	TypeTVSearchResults     Type = "tv_search_results"
	TypePersonSearchResults Type = "person_search_results"
	TypeMovieDetails        Type = "movie_details"
	TypeTVDetails           Type = "tv_details"
	TypeSeasonDetails       Type = "season_details"
	TypePersonDetails       Type = "person_details"
	TypeTrendingMovies      Type = "trending_movies"
	TypeGenreMovies         Type = "genre_movies"
	TypeSimilarMovies       Type = "similar_movies"
	TypeSimilarTV           Type = "similar_tv"
	TypeWatchProviders      Type = "watch_providers"
	TypeTrailerAvailable    Type = "trailer_available"
	TypeVideoAvailable      Type = "video_available"
	TypeWatchlistUpdated    Type = "watchlist_updated"
	TypeClearDisplay        Type = "clear_display"
)

// AllTypes lists every event type in a stable order.
var AllTypes = []Type{
	TypeMovieSearchResults,
	TypeTVSearchResults,
	TypePersonSearchResults,
	TypeMovieDetails,
	TypeTVDetails,
	TypeSeasonDetails,
	TypePersonDetails,
	TypeTrendingMovies,
	TypeGenreMovies,
	TypeSimilarMovies,
	TypeSimilarTV,
	TypeWatchProviders,
	TypeTrailerAvailable,
	TypeVideoAvailable,
	TypeWatchlistUpdated,
	TypeClearDisplay,
}

// Valid reports whether t is a known event type.
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Payload is implemented by every event payload struct.
type Payload interface {
	EventType() Type
}

// Event is one view update.
type Event struct {
	Type Type    `json:"type"`
	Data Payload `json:"data"`
}

// New wraps a payload in an Event tagged with the payload's type.
func New(p Payload) Event {
	return Event{Type: p.EventType(), Data: p}
}

// IsZero reports whether e carries no payload.
func (e Event) IsZero() bool {
	return e.Type == "" && e.Data == nil
}

// Entry is one numbered row of a listing.
type Entry struct {
	Position   int              `json:"position"`
	ID         int              `json:"id"`
	Kind       models.MediaKind `json:"kind"`
	Title      string           `json:"title"`
	Year       int              `json:"year,omitempty"`
	Label      string           `json:"label"`
	Overview   string           `json:"overview,omitempty"`
	PosterURL  string           `json:"poster_url,omitempty"`
	Rating     float64          `json:"rating,omitempty"`
	Department string           `json:"department,omitempty"`
	KnownFor   []string         `json:"known_for,omitempty"`
	Role       string           `json:"role,omitempty"`
}

// Listing is the numbered body shared by every list view.
type Listing struct {
	Results []Entry `json:"results"`
	Total   int     `json:"total"`
}

// NewListing numbers summaries from 1 in the order given.
func NewListing(summaries []models.Summary) Listing {
	entries := make([]Entry, len(summaries))
	for i, s := range summaries {
		entries[i] = Entry{
			Position:   i + 1,
			ID:         s.ID,
			Kind:       s.Kind,
			Title:      s.Title,
			Year:       s.Year,
			Label:      s.Label(),
			Overview:   s.Overview,
			PosterURL:  s.PosterURL,
			Rating:     s.Rating,
			Department: s.Department,
			KnownFor:   s.KnownFor,
			Role:       s.Role,
		}
	}
	return Listing{Results: entries, Total: len(entries)}
}
