// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package conversation

import (
	"slices"

	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/models"
)

// Focus is the entity currently being discussed. At most one field is set.
type Focus struct {
	Item   *models.CatalogItem
	Person *models.PersonItem
}

// Ref returns the focused entity's reference.
func (f *Focus) Ref() (models.Ref, bool) {
	switch {
	case f == nil:
		return models.Ref{}, false
	case f.Item != nil:
		return f.Item.Ref(), true
	case f.Person != nil:
		return f.Person.Ref(), true
	}
	return models.Ref{}, false
}

// View is a rendered screen that go_back can restore.
type View struct {
	Tag     StateTag
	Focus   *Focus
	Results *ResultSet
	Event   events.Event
}

// State is the conversational context of one session.
type State struct {
	Tag      StateTag
	Registry Registry
	Focus    *Focus
	Turn     uint64

	// Current is the last primary event shown; History holds earlier views,
	// oldest first.
	Current events.Event
	History []View
}

// NewState returns the state a session starts in.
func NewState() *State {
	return &State{Tag: Greeting}
}

// Clone returns a copy that can be modified without affecting s.
// ResultSets and fetched entities are immutable and stay shared.
func (s *State) Clone() *State {
	c := *s
	c.History = slices.Clone(s.History)
	return &c
}

// FocusedItem returns the focused catalog item, if any.
func (s *State) FocusedItem() *models.CatalogItem {
	if s.Focus == nil {
		return nil
	}
	return s.Focus.Item
}

// FocusedPerson returns the focused person, if any.
func (s *State) FocusedPerson() *models.PersonItem {
	if s.Focus == nil {
		return nil
	}
	return s.Focus.Person
}

// view captures what is on screen now.
func (s *State) view() View {
	return View{
		Tag:     s.Tag,
		Focus:   s.Focus,
		Results: s.Registry.Active(),
		Event:   s.Current,
	}
}

// Push records the current view in history before a new one is shown.
// Nothing is recorded before the first view, and history keeps at most depth
// views.
func (s *State) Push(depth int) {
	if s.Current.IsZero() {
		return
	}
	s.History = append(s.History, s.view())
	if depth > 0 && len(s.History) > depth {
		s.History = slices.Delete(s.History, 0, len(s.History)-depth)
	}
}

// Pop removes and returns the most recent history view.
func (s *State) Pop() (View, bool) {
	if len(s.History) == 0 {
		return View{}, false
	}
	v := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	return v, true
}

// Restore makes v the current view.
func (s *State) Restore(v View) {
	s.Tag = v.Tag
	s.Focus = v.Focus
	s.Registry.Replace(v.Results)
	s.Current = v.Event
}

// Reset detaches focus and clears the registry and history, landing in browsing.
func (s *State) Reset() {
	s.Tag = Browsing
	s.Focus = nil
	s.Registry.Clear()
	s.History = nil
	s.Current = events.Event{}
}

// Snapshot is the JSON view of a State.
type Snapshot struct {
	State        StateTag    `json:"state"`
	Turn         uint64      `json:"turn"`
	Focus        *models.Ref `json:"focus,omitempty"`
	Results      *ResultSet  `json:"results,omitempty"`
	HistoryDepth int         `json:"history_depth"`
	Allowed      []Action    `json:"allowed_actions"`
	Current      events.Type `json:"current_view,omitempty"`
}

// Snapshot returns the JSON view of s.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		State:        s.Tag,
		Turn:         s.Turn,
		Results:      s.Registry.Active(),
		HistoryDepth: len(s.History),
		Allowed:      AllowedActions(s.Tag),
		Current:      s.Current.Type,
	}
	if ref, ok := s.Focus.Ref(); ok {
		snap.Focus = &ref
	}
	return snap
}
