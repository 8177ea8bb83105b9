// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/models"
)

// SearchArgs are the arguments of search_movie and search_tv.
type SearchArgs struct {
	Query string `json:"query" validate:"notblank,max=200"`
	Year  int    `json:"year,omitempty" validate:"omitempty,year"`
}

// MovieDetailsArgs select a movie by id, title, or listing position.
type MovieDetailsArgs struct {
	MovieID    *int   `json:"movie_id,omitempty"`
	MovieTitle string `json:"movie_title,omitempty" validate:"max=200"`
	Position   *int   `json:"search_position,omitempty"`
}

func (a MovieDetailsArgs) selector() conversation.Selector {
	return conversation.Selector{ID: a.MovieID, Position: a.Position, Title: a.MovieTitle}
}

// TVDetailsArgs select a TV show by id, title, or listing position.
type TVDetailsArgs struct {
	TVID     *int   `json:"tv_id,omitempty"`
	TVTitle  string `json:"tv_title,omitempty" validate:"max=200"`
	Position *int   `json:"search_position,omitempty"`
}

func (a TVDetailsArgs) selector() conversation.Selector {
	return conversation.Selector{ID: a.TVID, Position: a.Position, Title: a.TVTitle}
}

// SeasonArgs select a season of the focused show, or of tv_id.
type SeasonArgs struct {
	TVID         *int `json:"tv_id,omitempty"`
	SeasonNumber *int `json:"season_number" validate:"required,min=0,max=100"`
}

// PersonArgs either search for people by name or select one.
type PersonArgs struct {
	Query    string `json:"query,omitempty" validate:"max=200"`
	PersonID *int   `json:"person_id,omitempty"`
	Position *int   `json:"search_position,omitempty"`
}

func (a PersonArgs) selects() bool {
	return a.PersonID != nil || a.Position != nil
}

// TrendingArgs choose the trending window; empty means a week.
type TrendingArgs struct {
	TimeWindow string `json:"time_window,omitempty" validate:"omitempty,oneof=day week"`
}

// GenreArgs name a genre.
type GenreArgs struct {
	GenreName string `json:"genre_name" validate:"notblank,max=50"`
}

// ItemArgs target an item explicitly; with neither id set they target the
// focused item.
type ItemArgs struct {
	MovieID *int `json:"movie_id,omitempty"`
	TVID    *int `json:"tv_id,omitempty"`
}

func (a ItemArgs) ref() (models.MediaKind, *int) {
	if a.MovieID != nil {
		return models.KindMovie, a.MovieID
	}
	if a.TVID != nil {
		return models.KindTV, a.TVID
	}
	return "", nil
}

// NoArgs is the argument body of actions that take none.
type NoArgs struct{}
