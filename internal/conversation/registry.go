// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package conversation

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/models"
)

// Entry is one row of a ResultSet. Position is 1-based, matching what was
// read aloud.
type Entry struct {
	Position int `json:"position"`
	models.Summary
}

// ResultSet is the most recent listing shown to the user. It is immutable
// once built; a new listing replaces it wholesale.
type ResultSet struct {
	Action    Action       `json:"action"`
	Query     string       `json:"query,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Entries   []Entry      `json:"entries"`
	Rendered  events.Event `json:"-"`
}

// NewResultSet numbers summaries from 1 in the order given.
func NewResultSet(action Action, query string, summaries []models.Summary, rendered events.Event, now time.Time) *ResultSet {
	entries := make([]Entry, len(summaries))
	for i, s := range summaries {
		entries[i] = Entry{Position: i + 1, Summary: s}
	}
	return &ResultSet{
		Action:    action,
		Query:     query,
		CreatedAt: now,
		Entries:   entries,
		Rendered:  rendered,
	}
}

// Len returns the number of entries.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Entries)
}

// At returns the entry at a 1-based position.
func (rs *ResultSet) At(position int) (Entry, bool) {
	if rs == nil || position < 1 || position > len(rs.Entries) {
		return Entry{}, false
	}
	return rs.Entries[position-1], true
}

// Selector references a prior result. ID, Position, and Title are alternates;
// when more than one is set, ID wins over Position, and Position over Title.
type Selector struct {
	ID       *int
	Position *int
	Title    string
}

// ByID selects a stable id.
func ByID(id int) Selector { return Selector{ID: &id} }

// ByPosition selects a 1-based position in the active set.
func ByPosition(p int) Selector { return Selector{Position: &p} }

// ByTitle selects by case-insensitive title substring.
func ByTitle(t string) Selector { return Selector{Title: t} }

// Empty reports whether no alternate is set.
func (s Selector) Empty() bool {
	return s.ID == nil && s.Position == nil && strings.TrimSpace(s.Title) == ""
}

func (s Selector) String() string {
	switch {
	case s.ID != nil:
		return "id " + strconv.Itoa(*s.ID)
	case s.Position != nil:
		return "position " + strconv.Itoa(*s.Position)
	case s.Title != "":
		return "title '" + s.Title + "'"
	default:
		return "empty selector"
	}
}

// Registry holds the active ResultSet. It is owned by a State and guarded by
// the session's turn lock, so it carries no lock of its own.
type Registry struct {
	active *ResultSet
}

// Replace swaps in rs, discarding the previous set entirely.
func (r *Registry) Replace(rs *ResultSet) {
	r.active = rs
}

// Clear drops the active set.
func (r *Registry) Clear() {
	r.active = nil
}

// Active returns the active set, or nil.
func (r *Registry) Active() *ResultSet {
	return r.active
}

var titleYear = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// Lookup resolves sel against the active set.
//
// An id is returned as a bare reference of kind without consulting the set.
// A position must be within 1..Len. A title is matched as a case-insensitive
// substring. When the title as written matches nothing, a year inside it is
// split off and narrows the candidates matching the rest.
// When kinds is non-empty, entries of other kinds are treated as absent.
func (r *Registry) Lookup(sel Selector, kind models.MediaKind, kinds ...models.MediaKind) (models.Summary, error) {
	accept := func(k models.MediaKind) bool {
		return len(kinds) == 0 || slices.Contains(kinds, k)
	}

	switch {
	case sel.ID != nil:
		if *sel.ID <= 0 {
			return models.Summary{}, fmt.Errorf("%s: %w", sel, models.ErrNotFound)
		}
		return models.Summary{ID: *sel.ID, Kind: kind}, nil

	case sel.Position != nil:
		e, ok := r.active.At(*sel.Position)
		if !ok || !accept(e.Kind) {
			return models.Summary{}, fmt.Errorf("%s of %d: %w", sel, r.active.Len(), models.ErrNotFound)
		}
		return e.Summary, nil

	case strings.TrimSpace(sel.Title) != "":
		return r.lookupTitle(sel.Title, accept)
	}
	return models.Summary{}, ErrMissingSelector
}

func (r *Registry) lookupTitle(title string, accept func(models.MediaKind) bool) (models.Summary, error) {
	needle := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	matches := r.matchTitle(needle, accept)

	// A year is split off only when the title as written matches nothing.
	if len(matches) == 0 {
		if m := titleYear.FindStringSubmatch(needle); m != nil {
			stripped := strings.Join(strings.Fields(titleYear.ReplaceAllString(needle, "")), " ")
			if stripped != "" {
				year, _ := strconv.Atoi(m[1])
				matches = narrowByYear(r.matchTitle(stripped, accept), year)
			}
		}
	}

	switch len(matches) {
	case 0:
		return models.Summary{}, fmt.Errorf("title '%s': %w", title, models.ErrNotFound)
	case 1:
		return matches[0].Summary, nil
	default:
		return models.Summary{}, &AmbiguousSelectorError{Title: title, Candidates: matches}
	}
}

func (r *Registry) matchTitle(needle string, accept func(models.MediaKind) bool) []Entry {
	if r.active == nil {
		return nil
	}
	var matches []Entry
	for _, e := range r.active.Entries {
		if accept(e.Kind) && strings.Contains(strings.ToLower(e.Title), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// narrowByYear keeps the entries from year when there is a choice to make
// and at least one of them matches.
func narrowByYear(matches []Entry, year int) []Entry {
	if len(matches) < 2 {
		return matches
	}
	var dated []Entry
	for _, e := range matches {
		if e.Year == year {
			dated = append(dated, e)
		}
	}
	if len(dated) == 0 {
		return matches
	}
	return dated
}

// Fetcher loads full entities by reference. The metadata gateway satisfies it.
type Fetcher interface {
	FetchItem(ctx context.Context, kind models.MediaKind, id int) (*models.CatalogItem, error)
	FetchPerson(ctx context.Context, id int) (*models.PersonItem, error)
}

// Resolved is the full entity behind a selector. Exactly one field is set.
type Resolved struct {
	Item   *models.CatalogItem
	Person *models.PersonItem
}

// Resolve looks sel up and fetches the full entity through f.
func (r *Registry) Resolve(ctx context.Context, sel Selector, f Fetcher, kind models.MediaKind, kinds ...models.MediaKind) (Resolved, error) {
	s, err := r.Lookup(sel, kind, kinds...)
	if err != nil {
		return Resolved{}, err
	}
	if s.Kind == models.KindPerson {
		p, err := f.FetchPerson(ctx, s.ID)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Person: p}, nil
	}
	item, err := f.FetchItem(ctx, s.Kind, s.ID)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Item: item}, nil
}
