// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

// Package session owns the conversational state of each connected client.
//
// A Session serializes its turns: one dispatcher turn runs at a time, and it
// sees the state committed by the previous one. Ending a session takes effect
// immediately, even while a turn is in flight; that turn's commit then fails
// with ErrClosed and it emits nothing.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/events"
)

// ErrClosed is returned by a commit on a session that has ended.
var ErrClosed = errors.New("session closed")

// Session is one conversation.
type Session struct {
	id        string
	owner     string
	createdAt time.Time
	emitter   events.Emitter
	now       func() time.Time

	// turn is a one-slot semaphore so waiting turns can honor their context.
	turn chan struct{}

	mu         sync.Mutex
	state      *conversation.State
	lastActive time.Time
	closed     bool
}

func newSession(id, owner string, emitter events.Emitter, now func() time.Time) *Session {
	if emitter == nil {
		emitter = events.Discard
	}
	t := now()
	return &Session{
		id:         id,
		owner:      owner,
		createdAt:  t,
		emitter:    emitter,
		now:        now,
		turn:       make(chan struct{}, 1),
		state:      conversation.NewState(),
		lastActive: t,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Owner returns who the session belongs to; watchlists are kept per owner.
func (s *Session) Owner() string { return s.owner }

// CreatedAt returns when the session started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Emitter returns where the session's events go.
func (s *Session) Emitter() events.Emitter { return s.emitter }

// Turn runs fn as the session's only active turn. fn receives the committed
// state, which it must not modify, and a commit function that installs the
// next state. Events emitted by fn after a successful commit are ordered
// with respect to every other turn of this session.
func (s *Session) Turn(ctx context.Context, fn func(cur *conversation.State, commit func(*conversation.State) error) error) error {
	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.turn }()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	cur := s.state
	s.mu.Unlock()

	return fn(cur, s.commit)
}

func (s *Session) commit(next *conversation.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.state = next
	s.lastActive = s.now()
	return nil
}

// Snapshot returns the JSON view of the committed state.
func (s *Session) Snapshot() conversation.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Touch marks the session as active without changing its state.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
}

// LastActive returns when the session last committed a turn or was touched.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close ends the session. It reports false if it had already ended.
func (s *Session) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	return true
}
