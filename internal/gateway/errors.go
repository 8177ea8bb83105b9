// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tomtom215/cinebot/internal/models"
	"github.com/tomtom215/cinebot/internal/tmdb"
)

// Reason classifies a gateway failure.
type Reason string

const (
	ReasonTimeout   Reason = "timeout"
	ReasonUpstream  Reason = "upstream"
	ReasonMalformed Reason = "malformed"
)

// Error is a failed catalog fetch. Not-found results are never reported as
// Error; they surface as models.ErrNotFound.
type Error struct {
	Op     string
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UnknownGenreError reports a genre name the catalog does not know.
type UnknownGenreError struct {
	Name      string
	Available []string
}

func (e *UnknownGenreError) Error() string {
	return fmt.Sprintf("unknown genre %q", e.Name)
}

// Unwrap lets callers treat an unknown genre as not found.
func (e *UnknownGenreError) Unwrap() error { return models.ErrNotFound }

// classify maps an upstream failure onto the gateway taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	var gerr *Error
	if errors.As(err, &gerr) {
		return err
	}

	reason := ReasonUpstream
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		reason = ReasonTimeout
	case errors.Is(err, tmdb.ErrMalformed):
		reason = ReasonMalformed
	}
	return &Error{Op: op, Reason: reason, Err: err}
}

// abandoned is returned when the caller's context ends before the fetch does.
// A deadline is a timeout; a cancellation is passed through as is.
func abandoned(op string, ctxErr error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return &Error{Op: op, Reason: ReasonTimeout, Err: ctxErr}
	}
	return fmt.Errorf("gateway %s: %w", op, ctxErr)
}
