// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"fmt"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/models"
)

// Not-found conditions with their own spoken replies.
var (
	ErrNoVideos   = fmt.Errorf("no videos available: %w", models.ErrNotFound)
	ErrNoSimilar  = fmt.Errorf("no similar titles: %w", models.ErrNotFound)
	ErrNotAShow   = fmt.Errorf("not a tv show: %w", models.ErrNotFound)
	ErrNoSeason   = fmt.Errorf("no such season: %w", models.ErrNotFound)
	ErrNoListings = fmt.Errorf("no results: %w", models.ErrNotFound)
)

// TurnError is a failed turn. It wraps the cause with what the turn was.
type TurnError struct {
	Action  conversation.Action
	Subject string
	Err     error
}

func (e *TurnError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s %q: %v", e.Action, e.Subject, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// UnknownActionError names an action that does not exist.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

// ArgumentError reports an argument body that could not be decoded.
type ArgumentError struct {
	Action conversation.Action
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("decode %s arguments: %v", e.Action, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }
