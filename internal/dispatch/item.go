// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"context"
	"strconv"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/models"
)

// maxSimilar caps the similar-titles rail.
const maxSimilar = 6

// GetMovieDetails opens a movie by id, title, or listing position.
func (d *Dispatcher) GetMovieDetails(ctx context.Context, conv Conversation, args MovieDetailsArgs) (*Result, error) {
	sel := args.selector()
	return d.run(ctx, conv, conversation.ActionGetMovieDetails, sel.String(), &args, func(t *turn) error {
		return t.details(sel, models.KindMovie)
	})
}

// GetTVDetails opens a TV show by id, title, or listing position.
func (d *Dispatcher) GetTVDetails(ctx context.Context, conv Conversation, args TVDetailsArgs) (*Result, error) {
	sel := args.selector()
	return d.run(ctx, conv, conversation.ActionGetTVDetails, sel.String(), &args, func(t *turn) error {
		return t.details(sel, models.KindTV)
	})
}

// details resolves sel and focuses the item. A position may point at a movie
// or a show; the view follows the entry's kind.
func (t *turn) details(sel conversation.Selector, kind models.MediaKind) error {
	if sel.Empty() {
		return conversation.ErrMissingSelector
	}
	res, err := t.next.Registry.Resolve(t.ctx, sel, t.d.catalog, kind, models.KindMovie, models.KindTV)
	if err != nil {
		return err
	}
	t.focus(res.Item, detailsEvent(res.Item, events.ViewOverview))
	t.reply = detailsReply(res.Item)
	return nil
}

func detailsEvent(item *models.CatalogItem, view string) events.Event {
	if item.Kind == models.KindTV {
		return events.New(events.TVDetails{View: view, Item: item})
	}
	return events.New(events.MovieDetails{View: view, Item: item})
}

// focus shows ev as a view of item and focuses it. The registry is kept so
// that the listing the item came from stays addressable.
func (t *turn) focus(item *models.CatalogItem, ev events.Event) {
	t.show(conversation.ViewingItem, ev)
	t.next.Focus = &conversation.Focus{Item: item}
}

// target returns the item an item-scoped action applies to: the explicit id
// when one is given, otherwise the focused item.
func (t *turn) target(args ItemArgs) (*models.CatalogItem, error) {
	if kind, id := args.ref(); id != nil {
		return t.d.catalog.FetchItem(t.ctx, kind, *id)
	}
	if item := t.cur.FocusedItem(); item != nil {
		return item, nil
	}
	return nil, conversation.ErrMissingSelector
}

func subjectOf(args ItemArgs) string {
	if _, id := args.ref(); id != nil {
		return strconv.Itoa(*id)
	}
	return ""
}

// GetSeasonDetails shows one season of the focused show, or of tv_id.
func (d *Dispatcher) GetSeasonDetails(ctx context.Context, conv Conversation, args SeasonArgs) (*Result, error) {
	ref := ItemArgs{TVID: args.TVID}
	return d.run(ctx, conv, conversation.ActionGetSeasonDetails, subjectOf(ref), &args, func(t *turn) error {
		show, err := t.target(ref)
		if err != nil {
			return err
		}
		if show.Kind != models.KindTV {
			return ErrNotAShow
		}
		number := *args.SeasonNumber
		if len(show.SeasonList) > 0 {
			if _, ok := show.Season(number); !ok {
				return ErrNoSeason
			}
		}
		season, err := t.d.catalog.FetchSeason(t.ctx, show.ID, number)
		if err != nil {
			return err
		}
		t.focus(show, events.New(events.SeasonDetails{Show: show.Summary(), Season: season}))
		t.reply = seasonReply(show, season)
		return nil
	})
}

// GetCastCrew shows the cast view of the target item.
func (d *Dispatcher) GetCastCrew(ctx context.Context, conv Conversation, args ItemArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGetCastCrew, subjectOf(args), nil, func(t *turn) error {
		item, err := t.target(args)
		if err != nil {
			return err
		}
		t.focus(item, detailsEvent(item, events.ViewCast))
		t.reply = castReply(item)
		return nil
	})
}

// GetSimilar lists titles similar to the target item and makes them the
// active result set.
func (d *Dispatcher) GetSimilar(ctx context.Context, conv Conversation, args ItemArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGetSimilar, subjectOf(args), nil, func(t *turn) error {
		item, err := t.target(args)
		if err != nil {
			return err
		}
		similar := truncate(item.Similar, maxSimilar)
		if len(similar) == 0 {
			return ErrNoSimilar
		}

		var ev events.Event
		if item.Kind == models.KindTV {
			ev = events.New(events.SimilarTV{Source: item.Summary(), Listing: events.NewListing(similar)})
		} else {
			ev = events.New(events.SimilarMovies{Source: item.Summary(), Listing: events.NewListing(similar)})
		}
		t.focus(item, ev)
		t.next.Registry.Replace(conversation.NewResultSet(t.action, item.Title, similar, ev, t.now()))
		t.reply = similarReply(item, similar)
		return nil
	})
}

// GetWatchProviders shows where the target item can be streamed, rented, or
// bought in the configured region.
func (d *Dispatcher) GetWatchProviders(ctx context.Context, conv Conversation, args ItemArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGetWatchProviders, subjectOf(args), nil, func(t *turn) error {
		item, err := t.target(args)
		if err != nil {
			return err
		}
		providers, err := t.d.catalog.FetchProviders(t.ctx, item.Kind, item.ID)
		if err != nil {
			return err
		}
		t.focus(item, events.New(events.WatchProviders{Item: item.Summary(), Providers: providers}))
		t.reply = providersReply(item, providers, t.d.cfg.Country)
		return nil
	})
}

// GetVideos plays the target item's trailer, or its first video when no
// trailer is tagged.
func (d *Dispatcher) GetVideos(ctx context.Context, conv Conversation, args ItemArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionGetVideos, subjectOf(args), nil, func(t *turn) error {
		item, err := t.target(args)
		if err != nil {
			return err
		}
		video, ok := item.Trailer()
		if !ok {
			return ErrNoVideos
		}

		var ev events.Event
		if video.IsTrailer() {
			ev = events.New(events.TrailerAvailable{Item: item.Summary(), Video: video})
		} else {
			ev = events.New(events.VideoAvailable{Item: item.Summary(), Video: video, Videos: item.Videos})
		}
		t.focus(item, ev)
		t.reply = videoReply(item, video)
		return nil
	})
}

// AddToWatchlist saves the target item for the session owner. Adding an item
// twice is not an error; the reply says it was already saved.
func (d *Dispatcher) AddToWatchlist(ctx context.Context, conv Conversation, args ItemArgs) (*Result, error) {
	return d.run(ctx, conv, conversation.ActionAddToWatchlist, subjectOf(args), nil, func(t *turn) error {
		item, err := t.target(args)
		if err != nil {
			return err
		}
		entry := models.NewWatchlistItem(item, t.now())
		added, err := t.d.watchlist.Add(t.ctx, t.conv.Owner(), entry)
		if err != nil {
			return err
		}
		saved, err := t.d.watchlist.List(t.ctx, t.conv.Owner())
		if err != nil {
			return err
		}
		t.focus(item, events.New(events.WatchlistUpdated{
			Item:  entry,
			Added: added,
			Count: len(saved),
			Items: saved,
		}))
		t.reply = watchlistReply(item, added, len(saved))
		return nil
	})
}
