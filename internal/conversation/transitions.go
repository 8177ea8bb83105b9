// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package conversation holds per-session conversational context.

A session is always in one of four states. Each state permits a fixed set of
actions, and each state may only be left for a fixed set of target states:

	greeting        -> browsing
	browsing        -> viewing_item | viewing_person | browsing
	viewing_item    -> viewing_item | browsing
	viewing_person  -> viewing_person | viewing_item | browsing

clear_display is permitted everywhere and always lands in browsing. go_back
restores a view recorded in history; the restored state was itself reached
through a permitted transition, so it is checked against the set of viewing
states rather than the current state's target column.

State is a plain value owned by exactly one session. The dispatcher works on a
Clone and swaps it in only after a turn fully succeeds.
*/
package conversation

import "slices"

// StateTag names a conversational state.
type StateTag string

const (
	Greeting      StateTag = "greeting"
	Browsing      StateTag = "browsing"
	ViewingItem   StateTag = "viewing_item"
	ViewingPerson StateTag = "viewing_person"
)

// Valid reports whether t is one of the four states.
func (t StateTag) Valid() bool {
	switch t {
	case Greeting, Browsing, ViewingItem, ViewingPerson:
		return true
	default:
		return false
	}
}

// Action names an intent callable by the language layer.
type Action string

const (
	ActionSearchMovie       Action = "search_movie"
	ActionSearchTV          Action = "search_tv"
	ActionSearchPerson      Action = "search_person"
	ActionGetTrending       Action = "get_trending"
	ActionGetMoviesByGenre  Action = "get_movies_by_genre"
	ActionGetMovieDetails   Action = "get_movie_details"
	ActionGetTVDetails      Action = "get_tv_details"
	ActionGetSeasonDetails  Action = "get_season_details"
	ActionGetCastCrew       Action = "get_cast_crew"
	ActionGetSimilar        Action = "get_similar"
	ActionGetWatchProviders Action = "get_watch_providers"
	ActionGetVideos         Action = "get_videos"
	ActionAddToWatchlist    Action = "add_to_watchlist"
	ActionClearDisplay      Action = "clear_display"
	ActionGoBack            Action = "go_back"
)

// AllActions lists every action in catalog order.
var AllActions = []Action{
	ActionSearchMovie,
	ActionSearchTV,
	ActionSearchPerson,
	ActionGetTrending,
	ActionGetMoviesByGenre,
	ActionGetMovieDetails,
	ActionGetTVDetails,
	ActionGetSeasonDetails,
	ActionGetCastCrew,
	ActionGetSimilar,
	ActionGetWatchProviders,
	ActionGetVideos,
	ActionAddToWatchlist,
	ActionClearDisplay,
	ActionGoBack,
}

// ParseAction returns the Action named s.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	return a, slices.Contains(AllActions, a)
}

var allowedActions = map[StateTag][]Action{
	Greeting: {
		ActionSearchMovie,
		ActionSearchTV,
		ActionSearchPerson,
		ActionGetTrending,
		ActionGetMoviesByGenre,
		ActionClearDisplay,
	},
	Browsing: {
		ActionSearchMovie,
		ActionSearchTV,
		ActionSearchPerson,
		ActionGetTrending,
		ActionGetMoviesByGenre,
		ActionGetMovieDetails,
		ActionGetTVDetails,
		ActionClearDisplay,
	},
	ViewingItem: {
		ActionGetMovieDetails,
		ActionGetTVDetails,
		ActionGetSeasonDetails,
		ActionGetCastCrew,
		ActionGetSimilar,
		ActionGetWatchProviders,
		ActionGetVideos,
		ActionAddToWatchlist,
		ActionSearchMovie,
		ActionSearchTV,
		ActionGetTrending,
		ActionClearDisplay,
		ActionGoBack,
	},
	ViewingPerson: {
		ActionSearchPerson,
		ActionGetMovieDetails,
		ActionGetTVDetails,
		ActionSearchMovie,
		ActionSearchTV,
		ActionGetTrending,
		ActionClearDisplay,
		ActionGoBack,
	},
}

var successTargets = map[StateTag][]StateTag{
	Greeting:      {Browsing},
	Browsing:      {ViewingItem, ViewingPerson, Browsing},
	ViewingItem:   {ViewingItem, Browsing},
	ViewingPerson: {ViewingPerson, ViewingItem, Browsing},
}

// Allowed reports whether action may be dispatched in state.
func Allowed(state StateTag, action Action) bool {
	return slices.Contains(allowedActions[state], action)
}

// AllowedActions returns the actions permitted in state, in table order.
func AllowedActions(state StateTag) []Action {
	return slices.Clone(allowedActions[state])
}

// Targets returns the states reachable from state on success.
func Targets(state StateTag) []StateTag {
	return slices.Clone(successTargets[state])
}

// CanReach reports whether a successful action may move from -> to.
func CanReach(from, to StateTag) bool {
	return slices.Contains(successTargets[from], to)
}

// CheckAction returns an *InvalidTransitionError when action is not
// permitted in state.
func CheckAction(state StateTag, action Action) error {
	if Allowed(state, action) {
		return nil
	}
	return &InvalidTransitionError{
		State:   state,
		Action:  action,
		Allowed: AllowedActions(state),
	}
}

// CheckTarget validates a committed transition.
func CheckTarget(from StateTag, action Action, to StateTag) error {
	switch {
	case action == ActionGoBack:
		if to == Greeting || !to.Valid() {
			return &TargetError{From: from, Action: action, To: to}
		}
		return nil
	case action == ActionClearDisplay:
		if to != Browsing {
			return &TargetError{From: from, Action: action, To: to}
		}
		return nil
	case !CanReach(from, to):
		return &TargetError{From: from, Action: action, To: to}
	}
	return nil
}
