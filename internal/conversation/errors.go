// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package conversation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingSelector is returned when an action needs a target but none of
// id, position, or title was given.
var ErrMissingSelector = errors.New("missing selector")

// InvalidTransitionError reports an action that is not permitted in the
// current state. The state is never modified when it is returned.
type InvalidTransitionError struct {
	State   StateTag
	Action  Action
	Allowed []Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %s is not allowed in state %s", e.Action, e.State)
}

// AmbiguousSelectorError reports a title that matched more than one entry.
type AmbiguousSelectorError struct {
	Title      string
	Candidates []Entry
}

func (e *AmbiguousSelectorError) Error() string {
	labels := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		labels[i] = fmt.Sprintf("%d. %s", c.Position, c.Label())
	}
	return fmt.Sprintf("title %q matches %d entries: %s", e.Title, len(e.Candidates), strings.Join(labels, "; "))
}

// TargetError reports a transition that landed outside the table. It
// indicates a dispatcher bug, not a user mistake.
type TargetError struct {
	From   StateTag
	Action Action
	To     StateTag
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("illegal transition %s -[%s]-> %s", e.From, e.Action, e.To)
}
