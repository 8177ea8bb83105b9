// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinebot/internal/conversation"
)

// Dispatch runs the action named name with a JSON object of named arguments.
// An empty body is the same as {}.
func (d *Dispatcher) Dispatch(ctx context.Context, conv Conversation, name string, raw []byte) (*Result, error) {
	action, ok := conversation.ParseAction(name)
	if !ok {
		return nil, &TurnError{Action: conversation.Action(name), Err: &UnknownActionError{Name: name}}
	}

	switch action {
	case conversation.ActionSearchMovie:
		return route(ctx, conv, action, raw, d.SearchMovie)
	case conversation.ActionSearchTV:
		return route(ctx, conv, action, raw, d.SearchTV)
	case conversation.ActionSearchPerson:
		return route(ctx, conv, action, raw, d.SearchPerson)
	case conversation.ActionGetTrending:
		return route(ctx, conv, action, raw, d.GetTrending)
	case conversation.ActionGetMoviesByGenre:
		return route(ctx, conv, action, raw, d.GetMoviesByGenre)
	case conversation.ActionGetMovieDetails:
		return route(ctx, conv, action, raw, d.GetMovieDetails)
	case conversation.ActionGetTVDetails:
		return route(ctx, conv, action, raw, d.GetTVDetails)
	case conversation.ActionGetSeasonDetails:
		return route(ctx, conv, action, raw, d.GetSeasonDetails)
	case conversation.ActionGetCastCrew:
		return route(ctx, conv, action, raw, d.GetCastCrew)
	case conversation.ActionGetSimilar:
		return route(ctx, conv, action, raw, d.GetSimilar)
	case conversation.ActionGetWatchProviders:
		return route(ctx, conv, action, raw, d.GetWatchProviders)
	case conversation.ActionGetVideos:
		return route(ctx, conv, action, raw, d.GetVideos)
	case conversation.ActionAddToWatchlist:
		return route(ctx, conv, action, raw, d.AddToWatchlist)
	case conversation.ActionClearDisplay:
		return route(ctx, conv, action, raw, func(ctx context.Context, conv Conversation, _ NoArgs) (*Result, error) {
			return d.ClearDisplay(ctx, conv)
		})
	case conversation.ActionGoBack:
		return route(ctx, conv, action, raw, func(ctx context.Context, conv Conversation, _ NoArgs) (*Result, error) {
			return d.GoBack(ctx, conv)
		})
	}
	return nil, &TurnError{Action: action, Err: &UnknownActionError{Name: name}}
}

func route[A any](ctx context.Context, conv Conversation, action conversation.Action, raw []byte, op func(context.Context, Conversation, A) (*Result, error)) (*Result, error) {
	var args A
	if body := bytes.TrimSpace(raw); len(body) > 0 && !bytes.Equal(body, []byte("null")) {
		if err := json.Unmarshal(body, &args); err != nil {
			return nil, &TurnError{Action: action, Err: &ArgumentError{Action: action, Err: err}}
		}
	}
	return op(ctx, conv, args)
}

// Param describes one action argument for the language layer.
type Param struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

// ActionInfo describes a callable action.
type ActionInfo struct {
	Name        conversation.Action `json:"name"`
	Description string              `json:"description"`
	Parameters  []Param             `json:"parameters"`
}

var (
	positionParam = Param{Name: "search_position", Type: "integer", Description: "1-based position in the results currently on screen"}
	movieIDParam  = Param{Name: "movie_id", Type: "integer", Description: "Movie id; defaults to the movie being viewed"}
)

var catalog = []ActionInfo{
	{
		Name:        conversation.ActionSearchMovie,
		Description: "Search for movies by title. A release year may be included in the query or given separately.",
		Parameters: []Param{
			{Name: "query", Type: "string", Required: true, Description: "Movie title to search for"},
			{Name: "year", Type: "integer", Description: "Release year to narrow the results"},
		},
	},
	{
		Name:        conversation.ActionSearchTV,
		Description: "Search for TV shows by title.",
		Parameters: []Param{
			{Name: "query", Type: "string", Required: true, Description: "Show title to search for"},
			{Name: "year", Type: "integer", Description: "First air year to narrow the results"},
		},
	},
	{
		Name:        conversation.ActionSearchPerson,
		Description: "Search for actors, directors, and crew, or open a person from the results.",
		Parameters: []Param{
			{Name: "query", Type: "string", Description: "Person's name"},
			{Name: "person_id", Type: "integer", Description: "Person id from the results"},
			positionParam,
		},
	},
	{
		Name:        conversation.ActionGetTrending,
		Description: "Show trending movies.",
		Parameters: []Param{
			{Name: "time_window", Type: "string", Description: "Trending period", Enum: []string{"day", "week"}},
		},
	},
	{
		Name:        conversation.ActionGetMoviesByGenre,
		Description: "Show popular movies in a genre.",
		Parameters: []Param{
			{Name: "genre_name", Type: "string", Required: true, Description: "Genre such as action, comedy, or sci-fi"},
		},
	},
	{
		Name:        conversation.ActionGetMovieDetails,
		Description: "Open a movie's details by id, title, or position in the results.",
		Parameters: []Param{
			{Name: "movie_id", Type: "integer", Description: "Movie id from the results"},
			{Name: "movie_title", Type: "string", Description: "Title as shown in the results"},
			positionParam,
		},
	},
	{
		Name:        conversation.ActionGetTVDetails,
		Description: "Open a TV show's details by id, title, or position in the results.",
		Parameters: []Param{
			{Name: "tv_id", Type: "integer", Description: "Show id from the results"},
			{Name: "tv_title", Type: "string", Description: "Title as shown in the results"},
			positionParam,
		},
	},
	{
		Name:        conversation.ActionGetSeasonDetails,
		Description: "Show the episodes of one season of a TV show.",
		Parameters: []Param{
			{Name: "tv_id", Type: "integer", Description: "Show id; defaults to the show being viewed"},
			{Name: "season_number", Type: "integer", Required: true, Description: "Season number"},
		},
	},
	{
		Name:        conversation.ActionGetCastCrew,
		Description: "Show the cast and crew of the title being viewed.",
		Parameters:  []Param{movieIDParam},
	},
	{
		Name:        conversation.ActionGetSimilar,
		Description: "Find titles similar to the one being viewed.",
		Parameters:  []Param{movieIDParam},
	},
	{
		Name:        conversation.ActionGetWatchProviders,
		Description: "Show where the title being viewed can be streamed, rented, or bought.",
		Parameters:  []Param{movieIDParam},
	},
	{
		Name:        conversation.ActionGetVideos,
		Description: "Play the trailer of the title being viewed.",
		Parameters:  []Param{movieIDParam},
	},
	{
		Name:        conversation.ActionAddToWatchlist,
		Description: "Save the title being viewed to the watchlist.",
		Parameters:  []Param{movieIDParam},
	},
	{
		Name:        conversation.ActionClearDisplay,
		Description: "Clear the screen and start over.",
		Parameters:  []Param{},
	},
	{
		Name:        conversation.ActionGoBack,
		Description: "Return to the previous screen.",
		Parameters:  []Param{},
	},
}

// Actions returns the action catalog in a stable order.
func Actions() []ActionInfo {
	out := make([]ActionInfo, len(catalog))
	copy(out, catalog)
	return out
}
