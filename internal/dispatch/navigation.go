// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"context"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/events"
)

// ClearDisplay empties the screen. Focus, the active result set, and history
// are all dropped. Clearing twice leaves the same state.
func (d *Dispatcher) ClearDisplay(ctx context.Context, conv Conversation) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionClearDisplay, "", nil, func(t *turn) error {
		t.next.Reset()
		t.primary = events.Clear()
		t.reply = clearReply
		return nil
	})
}

// GoBack restores the previous view and re-emits its event. With no history
// it returns to browsing: the active result set is shown again if there is
// one, otherwise the screen is cleared.
func (d *Dispatcher) GoBack(ctx context.Context, conv Conversation) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGoBack, "", nil, func(t *turn) error {
		if v, ok := t.next.Pop(); ok {
			t.next.Restore(v)
			t.primary = v.Event
			t.reply = backReply(v.Tag)
			return nil
		}

		t.next.Tag = conversation.Browsing
		t.next.Focus = nil
		if rs := t.next.Registry.Active(); rs != nil && !rs.Rendered.IsZero() {
			t.next.Current = rs.Rendered
			t.primary = rs.Rendered
			t.reply = backReply(conversation.Browsing)
			return nil
		}
		t.next.Registry.Clear()
		t.next.Current = events.Event{}
		t.primary = events.Clear()
		t.reply = clearReply
		return nil
	})
}
