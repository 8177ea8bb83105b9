// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package dispatch turns recognized intents into conversation turns.

Each operation is one turn:

 1. the action is checked against the current state's allowed set
 2. arguments are validated
 3. selectors are resolved against the active result set
 4. catalog data is fetched through the gateway
 5. the next state is built on a clone of the current one
 6. the next state is committed to the session
 7. an optional clear_display and exactly one primary event are emitted

A failed turn leaves the session untouched and emits nothing. Its error is
returned alongside a spoken reply from Reply.
*/
package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cinebot/internal/config"
	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/gateway"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/metrics"
	"github.com/tomtom215/cinebot/internal/models"
	"github.com/tomtom215/cinebot/internal/validation"
	"github.com/tomtom215/cinebot/internal/watchlist"
)

// Catalog is the part of the metadata gateway the dispatcher uses.
// *gateway.Gateway satisfies it.
type Catalog interface {
	conversation.Fetcher
	FetchByQuery(ctx context.Context, kind models.MediaKind, query string, f gateway.Filters) (*gateway.Listing, error)
	FetchSeason(ctx context.Context, tvID, number int) (*models.Season, error)
	FetchTrending(ctx context.Context, window string) (*gateway.Listing, error)
	FetchByGenre(ctx context.Context, name string) (*gateway.Listing, error)
	FetchProviders(ctx context.Context, kind models.MediaKind, id int) (*models.ProviderList, error)
}

// Conversation is a session as seen by the dispatcher. *session.Session
// satisfies it.
type Conversation interface {
	ID() string
	Owner() string
	Emitter() events.Emitter
	Turn(ctx context.Context, fn func(cur *conversation.State, commit func(*conversation.State) error) error) error
}

// Config tunes turn behavior.
type Config struct {
	AutoSelectSingle  bool
	ClearOnViewChange bool
	MaxResults        int
	MaxPeople         int
	HistoryDepth      int
	Country           string
}

// ConfigFrom maps the application config onto a dispatcher Config.
func ConfigFrom(c config.DispatchConfig) Config {
	return Config{
		AutoSelectSingle:  c.AutoSelectSingle,
		ClearOnViewChange: c.ClearOnViewChange,
		MaxResults:        c.MaxResults,
		MaxPeople:         c.MaxPeople,
		HistoryDepth:      c.HistoryDepth,
		Country:           c.ProviderCountry,
	}
}

// Dispatcher runs conversation turns. It holds no per-session state and is
// safe for concurrent use.
type Dispatcher struct {
	catalog   Catalog
	watchlist watchlist.Store
	cfg       Config
	now       func() time.Time
}

// New creates a dispatcher.
func New(catalog Catalog, store watchlist.Store, cfg Config) *Dispatcher {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.MaxPeople <= 0 {
		cfg.MaxPeople = 5
	}
	if cfg.HistoryDepth <= 0 {
		cfg.HistoryDepth = 20
	}
	if cfg.Country == "" {
		cfg.Country = "US"
	}
	if store == nil {
		store = watchlist.NewMemoryStore()
	}
	return &Dispatcher{catalog: catalog, watchlist: store, cfg: cfg, now: time.Now}
}

// SetClock replaces the time source used for result sets and watchlist items.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// Result is the outcome of a successful turn.
type Result struct {
	Action       conversation.Action   `json:"action"`
	Reply        string                `json:"reply"`
	State        conversation.StateTag `json:"state"`
	Turn         uint64                `json:"turn"`
	YearMismatch bool                  `json:"year_mismatch"`
	Events       []events.Type         `json:"events"`
}

// turn is the working set of one action while the session's turn lock is held.
type turn struct {
	ctx    context.Context
	d      *Dispatcher
	conv   Conversation
	action conversation.Action

	// cur is the committed state and is read-only; next is its clone.
	cur  *conversation.State
	next *conversation.State

	primary      events.Event
	reply        string
	yearMismatch bool
}

// show makes ev the primary event and the current view, landing in tag.
// The view being replaced is pushed onto history first, so callers change
// focus and the registry after calling show.
func (t *turn) show(tag conversation.StateTag, ev events.Event) {
	t.next.Push(t.d.cfg.HistoryDepth)
	t.next.Tag = tag
	t.next.Current = ev
	t.primary = ev
}

func (t *turn) now() time.Time { return t.d.now() }

// run executes one turn of action for conv. args, when non-nil, is a pointer
// to the validated argument struct; subject names what the turn was about
// for error replies.
func (d *Dispatcher) run(ctx context.Context, conv Conversation, action conversation.Action, subject string, args any, step func(*turn) error) (*Result, error) {
	start := time.Now()
	ctx = logging.ContextWithSession(ctx, conv.ID())

	var res *Result
	err := conv.Turn(ctx, func(cur *conversation.State, commit func(*conversation.State) error) error {
		if err := conversation.CheckAction(cur.Tag, action); err != nil {
			metrics.RecordInvalidTransition(string(cur.Tag), string(action))
			return err
		}
		if args != nil {
			if verr := validation.ValidateStruct(args); verr != nil {
				return verr
			}
		}

		t := &turn{
			ctx:    logging.ContextWithTurn(ctx, cur.Turn+1),
			d:      d,
			conv:   conv,
			action: action,
			cur:    cur,
			next:   cur.Clone(),
		}
		if err := step(t); err != nil {
			return err
		}
		if err := conversation.CheckTarget(cur.Tag, action, t.next.Tag); err != nil {
			logging.Ctx(t.ctx).Error().Err(err).Msg("Turn produced an illegal transition")
			return err
		}
		t.next.Turn = cur.Turn + 1

		if err := commit(t.next); err != nil {
			return err
		}
		res = &Result{
			Action:       action,
			Reply:        t.reply,
			State:        t.next.Tag,
			Turn:         t.next.Turn,
			YearMismatch: t.yearMismatch,
			Events:       t.emit(),
		}
		return nil
	})

	metrics.RecordDispatch(string(action), outcome(err), time.Since(start))
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("action", string(action)).Msg("Turn failed")
		return nil, &TurnError{Action: action, Subject: subject, Err: err}
	}

	logging.Ctx(ctx).Info().
		Str("action", string(action)).
		Str("state", string(res.State)).
		Uint64("turn", res.Turn).
		Dur("duration", time.Since(start)).
		Msg("Turn committed")
	return res, nil
}

// emit sends the optional leading clear and the primary event.
func (t *turn) emit() []events.Type {
	out := make([]events.Event, 0, 2)
	if t.d.cfg.ClearOnViewChange &&
		t.cur.Tag != t.next.Tag &&
		t.primary.Type != events.TypeClearDisplay {
		out = append(out, events.Clear())
	}
	out = append(out, t.primary)

	events.EmitAll(t.conv.Emitter(), out...)
	types := make([]events.Type, len(out))
	for i, e := range out {
		metrics.RecordEvent(string(e.Type))
		types[i] = e.Type
	}
	return types
}

// outcome is the metrics label for a turn result.
func outcome(err error) string {
	var (
		ite *conversation.InvalidTransitionError
		ge  *gateway.Error
		ve  *validation.RequestValidationError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ite):
		return "invalid_transition"
	case errors.As(err, &ve):
		return "invalid_arguments"
	case errors.As(err, &ge):
		return "gateway_error"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// truncate returns at most n leading elements of in.
func truncate[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}
