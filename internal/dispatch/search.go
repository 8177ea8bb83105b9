// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"context"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/gateway"
	"github.com/tomtom215/cinebot/internal/models"
)

// SearchMovie lists movies matching a title. A year may be given explicitly
// or spoken inside the query.
func (d *Dispatcher) SearchMovie(ctx context.Context, conv Conversation, args SearchArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionSearchMovie, args.Query, &args, func(t *turn) error {
		return t.search(models.KindMovie, args)
	})
}

// SearchTV lists TV shows matching a title.
func (d *Dispatcher) SearchTV(ctx context.Context, conv Conversation, args SearchArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionSearchTV, args.Query, &args, func(t *turn) error {
		return t.search(models.KindTV, args)
	})
}

func (t *turn) search(kind models.MediaKind, args SearchArgs) error {
	listing, err := t.d.catalog.FetchByQuery(t.ctx, kind, args.Query, gateway.Filters{Year: args.Year})
	if err != nil {
		return err
	}
	results := truncate(listing.Results, t.d.cfg.MaxResults)

	var ev events.Event
	if kind == models.KindTV {
		ev = events.New(events.TVSearchResults{
			Query:        listing.Query,
			Year:         listing.Year,
			YearMismatch: listing.YearMismatch,
			Listing:      events.NewListing(results),
		})
	} else {
		ev = events.New(events.MovieSearchResults{
			Query:        listing.Query,
			Year:         listing.Year,
			YearMismatch: listing.YearMismatch,
			Listing:      events.NewListing(results),
		})
	}

	t.listing(ev, listing.Query, results)
	t.yearMismatch = listing.YearMismatch
	t.reply = searchReply(kind, listing, results)
	return nil
}

// listing shows a browsable result set, detaching focus.
func (t *turn) listing(ev events.Event, query string, results []models.Summary) {
	t.show(conversation.Browsing, ev)
	t.next.Focus = nil
	t.next.Registry.Replace(conversation.NewResultSet(t.action, query, results, ev, t.now()))
}

// SearchPerson searches for people by name, or, given person_id or
// search_position, opens that person's filmography. A search with a single
// match opens it directly when viewing a person is reachable from here.
func (d *Dispatcher) SearchPerson(ctx context.Context, conv Conversation, args PersonArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionSearchPerson, args.Query, &args, func(t *turn) error {
		if args.selects() {
			if !conversation.CanReach(t.cur.Tag, conversation.ViewingPerson) {
				return &conversation.InvalidTransitionError{
					State:   t.cur.Tag,
					Action:  t.action,
					Allowed: conversation.AllowedActions(t.cur.Tag),
				}
			}
			sel := conversation.Selector{ID: args.PersonID, Position: args.Position}
			res, err := t.next.Registry.Resolve(t.ctx, sel, t.d.catalog, models.KindPerson, models.KindPerson)
			if err != nil {
				return err
			}
			return t.person(res.Person)
		}

		if args.Query == "" {
			return conversation.ErrMissingSelector
		}
		listing, err := t.d.catalog.FetchByQuery(t.ctx, models.KindPerson, args.Query, gateway.Filters{})
		if err != nil {
			return err
		}
		people := truncate(listing.Results, t.d.cfg.MaxPeople)

		if len(people) == 1 && t.d.cfg.AutoSelectSingle && conversation.CanReach(t.cur.Tag, conversation.ViewingPerson) {
			p, err := t.d.catalog.FetchPerson(t.ctx, people[0].ID)
			if err != nil {
				return err
			}
			return t.person(p)
		}

		ev := events.New(events.PersonSearchResults{Query: listing.Query, Listing: events.NewListing(people)})
		t.listing(ev, listing.Query, people)
		t.reply = peopleReply(listing.Query, people)
		return nil
	})
}

// person focuses p and makes its filmography the active result set.
func (t *turn) person(p *models.PersonItem) error {
	ev := events.New(events.PersonDetails{Person: p, Listing: events.NewListing(p.Filmography)})
	t.show(conversation.ViewingPerson, ev)
	t.next.Focus = &conversation.Focus{Person: p}
	t.next.Registry.Replace(conversation.NewResultSet(t.action, p.Name, p.Filmography, ev, t.now()))
	t.reply = personReply(p)
	return nil
}

// GetTrending lists trending movies for the day or week.
func (d *Dispatcher) GetTrending(ctx context.Context, conv Conversation, args TrendingArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGetTrending, args.TimeWindow, &args, func(t *turn) error {
		listing, err := t.d.catalog.FetchTrending(t.ctx, args.TimeWindow)
		if err != nil {
			return err
		}
		if len(listing.Results) == 0 {
			return ErrNoListings
		}
		results := truncate(listing.Results, t.d.cfg.MaxResults)
		ev := events.New(events.TrendingMovies{Window: listing.Window, Listing: events.NewListing(results)})
		t.listing(ev, listing.Window, results)
		t.reply = trendingReply(listing.Window, results)
		return nil
	})
}

// GetMoviesByGenre lists popular movies in a genre.
func (d *Dispatcher) GetMoviesByGenre(ctx context.Context, conv Conversation, args GenreArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGetMoviesByGenre, args.GenreName, &args, func(t *turn) error {
		listing, err := t.d.catalog.FetchByGenre(t.ctx, args.GenreName)
		if err != nil {
			return err
		}
		if len(listing.Results) == 0 {
			return ErrNoListings
		}
		results := truncate(listing.Results, t.d.cfg.MaxResults)
		ev := events.New(events.GenreMovies{Genre: listing.Genre, GenreID: listing.GenreID, Listing: events.NewListing(results)})
		t.listing(ev, listing.Genre, results)
		t.reply = genreReply(listing.Genre, results)
		return nil
	})
}
