// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned when no catalog entity matches a lookup.
// Lookup errors throughout the module wrap it.
var ErrNotFound = errors.New("not found")

// MediaKind identifies the catalog namespace an id belongs to.
// TMDB ids are only unique within a kind, so every reference carries one.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindTV     MediaKind = "tv"
	KindPerson MediaKind = "person"
)

// Valid reports whether k is one of the known kinds.
func (k MediaKind) Valid() bool {
	switch k {
	case KindMovie, KindTV, KindPerson:
		return true
	default:
		return false
	}
}

// Summary is the compact form of a catalog entity used in listings,
// filmographies, and similar-title rails.
type Summary struct {
	ID          int       `json:"id"`
	Kind        MediaKind `json:"kind"`
	Title       string    `json:"title"`
	Year        int       `json:"year,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	PosterURL   string    `json:"poster_url,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	Popularity  float64   `json:"popularity,omitempty"`

	// Person-only fields.
	Department string   `json:"department,omitempty"`
	KnownFor   []string `json:"known_for,omitempty"`

	// Set when the summary comes from a filmography credit.
	Role string `json:"role,omitempty"`
}

// Label renders the disambiguation key read back to the user:
//
//	id: 114 title: 'Pretty Woman' (1990)
//
// People carry their department where titles carry a year.
func (s Summary) Label() string {
	tail := "unknown year"
	switch {
	case s.Kind == KindPerson && s.Department != "":
		tail = s.Department
	case s.Kind == KindPerson:
		tail = "unknown department"
	case s.Year > 0:
		tail = strconv.Itoa(s.Year)
	}
	return fmt.Sprintf("id: %d title: '%s' (%s)", s.ID, s.Title, tail)
}

// Ref returns the stable reference for the summary.
func (s Summary) Ref() Ref {
	return Ref{Kind: s.Kind, ID: s.ID}
}

// Ref is a stable (kind, id) reference to a catalog entity.
type Ref struct {
	Kind MediaKind `json:"kind"`
	ID   int       `json:"id"`
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// Credit is one cast or crew entry on a title.
type Credit struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Character  string `json:"character,omitempty"`
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
	Order      int    `json:"order"`
}

// Video is a trailer, teaser, or clip hosted on an external site.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// IsTrailer reports whether the video is tagged as a trailer.
func (v Video) IsTrailer() bool {
	return v.Type == "Trailer"
}

// SeasonSummary describes one season of a TV show as listed on the show.
type SeasonSummary struct {
	Number       int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date,omitempty"`
	PosterURL    string `json:"poster_url,omitempty"`
}

// CatalogItem is the full record of a movie or TV show.
// Items are immutable once fetched and are shared between sessions through the cache.
type CatalogItem struct {
	ID            int             `json:"id"`
	Kind          MediaKind       `json:"kind"`
	Title         string          `json:"title"`
	Tagline       string          `json:"tagline,omitempty"`
	Overview      string          `json:"overview,omitempty"`
	ReleaseDate   string          `json:"release_date,omitempty"`
	Year          int             `json:"year,omitempty"`
	Runtime       int             `json:"runtime,omitempty"`
	Seasons       int             `json:"number_of_seasons,omitempty"`
	Episodes      int             `json:"number_of_episodes,omitempty"`
	Genres        []string        `json:"genres"`
	Rating        float64         `json:"rating"`
	VoteCount     int             `json:"vote_count"`
	PosterURL     string          `json:"poster_url,omitempty"`
	BackdropURL   string          `json:"backdrop_url,omitempty"`
	Homepage      string          `json:"homepage,omitempty"`
	IMDbID        string          `json:"imdb_id,omitempty"`
	Status        string          `json:"status,omitempty"`
	ContentRating string          `json:"content_rating"`
	Companies     []string        `json:"companies,omitempty"`
	Networks      []string        `json:"networks,omitempty"`
	CreatedBy     []string        `json:"created_by,omitempty"`
	Cast          []Credit        `json:"cast"`
	Crew          []Credit        `json:"crew"`
	Videos        []Video         `json:"videos"`
	Similar       []Summary       `json:"similar"`
	SeasonList    []SeasonSummary `json:"seasons,omitempty"`
}

// Summary returns the listing form of the item.
func (c *CatalogItem) Summary() Summary {
	return Summary{
		ID:          c.ID,
		Kind:        c.Kind,
		Title:       c.Title,
		Year:        c.Year,
		ReleaseDate: c.ReleaseDate,
		Overview:    c.Overview,
		PosterURL:   c.PosterURL,
		Rating:      c.Rating,
	}
}

// Ref returns the stable reference for the item.
func (c *CatalogItem) Ref() Ref {
	return Ref{Kind: c.Kind, ID: c.ID}
}

// Director returns the first crew member credited as Director, if any.
func (c *CatalogItem) Director() (Credit, bool) {
	for _, cr := range c.Crew {
		if cr.Job == "Director" {
			return cr, true
		}
	}
	return Credit{}, false
}

// Trailer returns the first trailer among the item's videos, falling back to
// any video when no trailer is tagged. The bool is false when there are no videos.
func (c *CatalogItem) Trailer() (Video, bool) {
	for _, v := range c.Videos {
		if v.IsTrailer() {
			return v, true
		}
	}
	if len(c.Videos) > 0 {
		return c.Videos[0], true
	}
	return Video{}, false
}

// Season returns the listed season with the given number.
func (c *CatalogItem) Season(number int) (SeasonSummary, bool) {
	for _, s := range c.SeasonList {
		if s.Number == number {
			return s, true
		}
	}
	return SeasonSummary{}, false
}

// YearFromDate extracts the year from a YYYY-MM-DD date string.
// It returns 0 for empty or malformed input.
func YearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
