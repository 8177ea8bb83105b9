// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package conversation

import (
	"errors"
	"testing"
)

func TestAllowedActionsTable(t *testing.T) {
	tests := []struct {
		state   StateTag
		allowed []Action
		denied  []Action
	}{
		{
			state:   Greeting,
			allowed: []Action{ActionSearchMovie, ActionSearchTV, ActionSearchPerson, ActionGetTrending, ActionGetMoviesByGenre, ActionClearDisplay},
			denied:  []Action{ActionGetMovieDetails, ActionAddToWatchlist, ActionGoBack, ActionGetCastCrew, ActionGetSimilar},
		},
		{
			state:   Browsing,
			allowed: []Action{ActionSearchMovie, ActionSearchPerson, ActionGetTrending, ActionGetMoviesByGenre, ActionGetMovieDetails, ActionGetTVDetails, ActionClearDisplay},
			denied:  []Action{ActionAddToWatchlist, ActionGoBack, ActionGetVideos, ActionGetSeasonDetails},
		},
		{
			state: ViewingItem,
			allowed: []Action{ActionGetMovieDetails, ActionGetSeasonDetails, ActionGetCastCrew, ActionGetSimilar, ActionGetWatchProviders,
				ActionGetVideos, ActionAddToWatchlist, ActionSearchMovie, ActionGetTrending, ActionClearDisplay, ActionGoBack},
			denied: []Action{ActionSearchPerson, ActionGetMoviesByGenre},
		},
		{
			state:   ViewingPerson,
			allowed: []Action{ActionSearchPerson, ActionGetMovieDetails, ActionSearchMovie, ActionGetTrending, ActionClearDisplay, ActionGoBack},
			denied:  []Action{ActionAddToWatchlist, ActionGetCastCrew, ActionGetMoviesByGenre, ActionGetSimilar},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			for _, a := range tt.allowed {
				if !Allowed(tt.state, a) {
					t.Errorf("%s should be allowed in %s", a, tt.state)
				}
				if err := CheckAction(tt.state, a); err != nil {
					t.Errorf("CheckAction(%s, %s) = %v", tt.state, a, err)
				}
			}
			for _, a := range tt.denied {
				if Allowed(tt.state, a) {
					t.Errorf("%s should be denied in %s", a, tt.state)
				}
				var ite *InvalidTransitionError
				if err := CheckAction(tt.state, a); !errors.As(err, &ite) {
					t.Errorf("CheckAction(%s, %s) = %v, want InvalidTransitionError", tt.state, a, err)
				} else if ite.State != tt.state || ite.Action != a || len(ite.Allowed) == 0 {
					t.Errorf("InvalidTransitionError = %+v", ite)
				}
			}
		})
	}
}

func TestClearDisplayAllowedEverywhere(t *testing.T) {
	for _, s := range []StateTag{Greeting, Browsing, ViewingItem, ViewingPerson} {
		if !Allowed(s, ActionClearDisplay) {
			t.Errorf("clear_display denied in %s", s)
		}
		if err := CheckTarget(s, ActionClearDisplay, Browsing); err != nil {
			t.Errorf("CheckTarget(%s, clear_display, browsing) = %v", s, err)
		}
	}
}

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		from   StateTag
		action Action
		to     StateTag
		ok     bool
	}{
		{Greeting, ActionSearchMovie, Browsing, true},
		{Greeting, ActionSearchPerson, ViewingPerson, false},
		{Browsing, ActionGetMovieDetails, ViewingItem, true},
		{Browsing, ActionSearchPerson, ViewingPerson, true},
		{Browsing, ActionSearchMovie, Browsing, true},
		{ViewingItem, ActionGetCastCrew, ViewingItem, true},
		{ViewingItem, ActionSearchMovie, Browsing, true},
		{ViewingItem, ActionSearchPerson, ViewingPerson, false},
		{ViewingPerson, ActionGetMovieDetails, ViewingItem, true},
		{ViewingPerson, ActionSearchPerson, ViewingPerson, true},
		{ViewingItem, ActionGoBack, ViewingPerson, true},
		{ViewingItem, ActionGoBack, Greeting, false},
		{ViewingItem, ActionClearDisplay, ViewingItem, false},
		{Browsing, ActionGetMovieDetails, Greeting, false},
	}

	for _, tt := range tests {
		err := CheckTarget(tt.from, tt.action, tt.to)
		if tt.ok && err != nil {
			t.Errorf("CheckTarget(%s, %s, %s) = %v, want nil", tt.from, tt.action, tt.to, err)
		}
		if !tt.ok {
			var te *TargetError
			if !errors.As(err, &te) {
				t.Errorf("CheckTarget(%s, %s, %s) = %v, want TargetError", tt.from, tt.action, tt.to, err)
			}
		}
	}
}

func TestEveryStateHasTableEntries(t *testing.T) {
	for _, s := range []StateTag{Greeting, Browsing, ViewingItem, ViewingPerson} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
		if len(AllowedActions(s)) == 0 || len(Targets(s)) == 0 {
			t.Errorf("%s missing from table", s)
		}
	}
	if StateTag("lobby").Valid() {
		t.Error("unknown state reported valid")
	}
}

func TestEveryActionReachableSomewhere(t *testing.T) {
	for _, a := range AllActions {
		found := false
		for _, s := range []StateTag{Greeting, Browsing, ViewingItem, ViewingPerson} {
			if Allowed(s, a) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("action %s is not allowed in any state", a)
		}
	}
}

func TestParseAction(t *testing.T) {
	if a, ok := ParseAction("get_movie_details"); !ok || a != ActionGetMovieDetails {
		t.Errorf("ParseAction(get_movie_details) = %v, %v", a, ok)
	}
	if _, ok := ParseAction("launch_rockets"); ok {
		t.Error("ParseAction should reject unknown names")
	}
}

func TestAllowedActionsReturnsCopy(t *testing.T) {
	got := AllowedActions(Greeting)
	got[0] = ActionGoBack
	if Allowed(Greeting, ActionGoBack) {
		t.Error("mutating the returned slice changed the table")
	}
}
