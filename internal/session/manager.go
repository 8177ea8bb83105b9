// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/metrics"
	"github.com/tomtom215/cinebot/internal/models"
)

// Reasons a session ends, used as a metrics label.
const (
	ReasonDeleted    = "deleted"
	ReasonIdle       = "idle"
	ReasonDisconnect = "disconnect"
	ReasonShutdown   = "shutdown"
)

// Config controls session lifetime.
type Config struct {
	IdleTimeout     time.Duration
	ReapInterval    time.Duration
	EndOnDisconnect bool
}

// EmitterFactory returns the emitter for a new session's events.
type EmitterFactory func(sessionID string) events.Emitter

// Manager is the session table. Its lock guards only the table; turns run
// under each session's own lock.
type Manager struct {
	cfg      Config
	emitters EmitterFactory
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	endMu sync.Mutex
	onEnd []func(id string)
}

// NewManager creates an empty session table.
func NewManager(cfg Config, emitters EmitterFactory) *Manager {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = time.Minute
	}
	return &Manager{
		cfg:      cfg,
		emitters: emitters,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// SetClock replaces the time source. It must be called before any session
// is created.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// OnEnd registers fn to run after a session ends, outside any lock.
func (m *Manager) OnEnd(fn func(id string)) {
	m.endMu.Lock()
	defer m.endMu.Unlock()
	m.onEnd = append(m.onEnd, fn)
}

// Create starts a session for owner. An empty owner is replaced by the
// session id, giving the session a private watchlist.
func (m *Manager) Create(owner string) *Session {
	id := uuid.New().String()
	if owner == "" {
		owner = id
	}

	var em events.Emitter
	if m.emitters != nil {
		em = m.emitters(id)
	}
	s := newSession(id, owner, em, m.now)

	m.mu.Lock()
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	logging.Info().Str("session_id", id).Str("owner", owner).Msg("Session created")
	return s
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return s, nil
}

// End closes and removes a session. A turn in flight keeps running but its
// commit fails.
func (m *Manager) End(id, reason string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	if !s.close() {
		return nil
	}

	metrics.ActiveSessions.Set(float64(n))
	metrics.RecordSessionEnded(reason)
	logging.Info().Str("session_id", id).Str("reason", reason).Msg("Session ended")

	m.endMu.Lock()
	hooks := append([]func(string){}, m.onEnd...)
	m.endMu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

// ClientsGone is called when the last event stream of a session disconnects.
func (m *Manager) ClientsGone(id string) {
	if !m.cfg.EndOnDisconnect {
		return
	}
	if err := m.End(id, ReasonDisconnect); err != nil {
		logging.Debug().Err(err).Str("session_id", id).Msg("Disconnect for unknown session")
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap ends every session idle for longer than the idle timeout and returns
// how many it ended.
func (m *Manager) Reap() int {
	cutoff := m.now().Add(-m.cfg.IdleTimeout)

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	ended := 0
	for _, id := range idle {
		if m.End(id, ReasonIdle) == nil {
			ended++
		}
	}
	return ended
}

// Shutdown ends every session.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		_ = m.End(id, ReasonShutdown)
	}
}

// Serve runs the idle reaper until ctx is done, then ends all sessions. It
// implements suture.Service.
func (m *Manager) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Shutdown()
			return ctx.Err()
		case <-ticker.C:
			if n := m.Reap(); n > 0 {
				logging.Info().Int("ended", n).Int("active", m.Len()).Msg("Reaped idle sessions")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (m *Manager) String() string {
	return "session-reaper"
}
