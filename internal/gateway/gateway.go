// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package gateway is the only path from the conversation layer to the movie
catalog.

Every lookup goes through the same pipeline:

 1. the in-memory cache (internal/cache)
 2. the optional persistent tier (Badger)
 3. an in-flight group, so concurrent identical lookups share one fetch
 4. the circuit breaker
 5. the TMDB client

Fetches run detached from the caller under their own timeout. A caller that
gives up stops waiting, but the fetch still completes and fills the cache for
the next turn.
*/
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinebot/internal/cache"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/metrics"
	"github.com/tomtom215/cinebot/internal/models"
)

// Upstream is the catalog API. *tmdb.Client satisfies it.
type Upstream interface {
	SearchMovies(ctx context.Context, query string) ([]models.Summary, error)
	SearchTV(ctx context.Context, query string) ([]models.Summary, error)
	SearchPeople(ctx context.Context, query string) ([]models.Summary, error)
	Movie(ctx context.Context, id int) (*models.CatalogItem, error)
	TV(ctx context.Context, id int) (*models.CatalogItem, error)
	Season(ctx context.Context, tvID, number int) (*models.Season, error)
	Person(ctx context.Context, id int) (*models.PersonItem, error)
	Trending(ctx context.Context, window string) ([]models.Summary, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	DiscoverByGenre(ctx context.Context, genreID int) ([]models.Summary, error)
	WatchProviders(ctx context.Context, kind models.MediaKind, id int, country string) (*models.ProviderList, error)
}

// Filters narrow a search.
type Filters struct {
	Year int
}

// Listing is an ordered page of summaries. Results is shared with the cache
// and must not be modified.
type Listing struct {
	Kind         models.MediaKind `json:"kind"`
	Query        string           `json:"query,omitempty"`
	Year         int              `json:"year,omitempty"`
	YearMismatch bool             `json:"year_mismatch,omitempty"`
	Window       string           `json:"window,omitempty"`
	Genre        string           `json:"genre,omitempty"`
	GenreID      int              `json:"genre_id,omitempty"`
	Results      []models.Summary `json:"results"`
}

// Options configure a Gateway.
type Options struct {
	TTL      time.Duration
	GenreTTL time.Duration
	Timeout  time.Duration
	Country  string

	// Persistent is an optional second cache tier.
	Persistent *cache.Persistent
}

// Default option values.
const (
	DefaultTTL      = time.Hour
	DefaultGenreTTL = 7 * 24 * time.Hour
	DefaultTimeout  = 10 * time.Second
	DefaultCountry  = "US"
)

// Gateway fetches catalog data with caching and in-flight deduplication.
type Gateway struct {
	up         Upstream
	cache      *cache.Cache
	persistent *cache.Persistent
	group      singleflight.Group
	breaker    *breaker

	ttl      time.Duration
	genreTTL time.Duration
	timeout  time.Duration
	country  string
}

// New creates a gateway over up, caching in c.
func New(up Upstream, c *cache.Cache, opts Options) *Gateway {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.GenreTTL <= 0 {
		opts.GenreTTL = DefaultGenreTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Country == "" {
		opts.Country = DefaultCountry
	}
	return &Gateway{
		up:         up,
		cache:      c,
		persistent: opts.Persistent,
		breaker:    newBreaker(breakerName),
		ttl:        opts.TTL,
		genreTTL:   opts.GenreTTL,
		timeout:    opts.Timeout,
		country:    opts.Country,
	}
}

// BreakerState reports the upstream circuit breaker state.
func (g *Gateway) BreakerState() string {
	return g.breaker.State()
}

// fetch resolves key through the cache tiers, loading it with load on a miss.
// Concurrent callers for the same key share one load. The load runs under
// g.timeout on a context detached from ctx, and its result is cached even if
// every caller has stopped waiting.
func fetch[T any](ctx context.Context, g *Gateway, op, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := g.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			metrics.RecordGatewayFetch(op, "cache")
			return t, nil
		}
	}

	if g.persistent != nil {
		var t T
		found, err := g.persistent.Get(key, &t)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("op", op).Msg("Persistent cache read failed")
		} else if found {
			g.cache.SetWithTTL(key, t, ttl)
			metrics.RecordGatewayFetch(op, "persistent")
			return t, nil
		}
	}

	detached := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(detached, g.timeout)
		defer cancel()

		v, err := g.breaker.execute(func() (any, error) {
			return load(fctx)
		})
		if err != nil {
			return nil, err
		}

		t, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", v)
		}
		g.cache.SetWithTTL(key, t, ttl)
		if g.persistent != nil {
			if err := g.persistent.Set(key, t, ttl); err != nil {
				logging.Warn().Err(err).Str("op", op).Msg("Persistent cache write failed")
			}
		}
		return t, nil
	})

	select {
	case <-ctx.Done():
		metrics.RecordGatewayFetch(op, "error")
		return zero, abandoned(op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			metrics.RecordGatewayFetch(op, "error")
			return zero, classify(op, res.Err)
		}
		source := "upstream"
		if res.Shared {
			source = "shared"
		}
		metrics.RecordGatewayFetch(op, source)
		return res.Val.(T), nil
	}
}

type searchKey struct {
	Kind  models.MediaKind `json:"kind"`
	Query string           `json:"query"`
}

// FetchByQuery searches the catalog for kind (movie, tv, or person).
//
// A year inside the query, such as "pretty woman from 1990", becomes a year
// filter unless f.Year is already set. The upstream page is fetched and cached
// without the filter; when the filter matches nothing the unfiltered page is
// returned with YearMismatch set. An empty page is models.ErrNotFound.
func (g *Gateway) FetchByQuery(ctx context.Context, kind models.MediaKind, query string, f Filters) (*Listing, error) {
	title, year := strings.TrimSpace(query), f.Year
	if year == 0 {
		title, year = SplitYear(title)
	}
	if title == "" {
		return nil, fmt.Errorf("empty %s query: %w", kind, models.ErrNotFound)
	}

	var search func(context.Context, string) ([]models.Summary, error)
	switch kind {
	case models.KindMovie:
		search = g.up.SearchMovies
	case models.KindTV:
		search = g.up.SearchTV
	case models.KindPerson:
		search = g.up.SearchPeople
		year = 0
	default:
		return nil, fmt.Errorf("search kind %q: %w", kind, models.ErrNotFound)
	}

	key := cache.GenerateKey("search", searchKey{Kind: kind, Query: normalizeQuery(title)})
	page, err := fetch(ctx, g, "search", key, g.ttl, func(ctx context.Context) ([]models.Summary, error) {
		return search(ctx, title)
	})
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		return nil, fmt.Errorf("%s matching %q: %w", kind, title, models.ErrNotFound)
	}

	results, matched := filterYear(page, year)
	return &Listing{
		Kind:         kind,
		Query:        title,
		Year:         year,
		YearMismatch: !matched,
		Results:      results,
	}, nil
}

type refKey struct {
	Kind models.MediaKind `json:"kind"`
	ID   int              `json:"id"`
}

// FetchItem loads a movie or TV show with its credits, videos, and similar
// titles.
func (g *Gateway) FetchItem(ctx context.Context, kind models.MediaKind, id int) (*models.CatalogItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
	}
	var load func(context.Context, int) (*models.CatalogItem, error)
	switch kind {
	case models.KindMovie:
		load = g.up.Movie
	case models.KindTV:
		load = g.up.TV
	default:
		return nil, fmt.Errorf("item kind %q: %w", kind, models.ErrNotFound)
	}

	key := cache.GenerateKey("item", refKey{Kind: kind, ID: id})
	return fetch(ctx, g, "item", key, g.ttl, func(ctx context.Context) (*models.CatalogItem, error) {
		return load(ctx, id)
	})
}

// FetchPerson loads a person with their filmography.
func (g *Gateway) FetchPerson(ctx context.Context, id int) (*models.PersonItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("person %d: %w", id, models.ErrNotFound)
	}
	key := cache.GenerateKey("person", refKey{Kind: models.KindPerson, ID: id})
	return fetch(ctx, g, "person", key, g.ttl, func(ctx context.Context) (*models.PersonItem, error) {
		return g.up.Person(ctx, id)
	})
}

// FetchSeason loads one season of a TV show with its episodes.
func (g *Gateway) FetchSeason(ctx context.Context, tvID, number int) (*models.Season, error) {
	if tvID <= 0 || number < 0 {
		return nil, fmt.Errorf("tv %d season %d: %w", tvID, number, models.ErrNotFound)
	}
	key := cache.GenerateKey("season", map[string]int{"tv": tvID, "season": number})
	return fetch(ctx, g, "season", key, g.ttl, func(ctx context.Context) (*models.Season, error) {
		return g.up.Season(ctx, tvID, number)
	})
}

// Trending windows.
const (
	WindowDay  = "day"
	WindowWeek = "week"
)

// FetchTrending lists trending movies for window; an empty window means a week.
func (g *Gateway) FetchTrending(ctx context.Context, window string) (*Listing, error) {
	switch window {
	case "":
		window = WindowWeek
	case WindowDay, WindowWeek:
	default:
		return nil, fmt.Errorf("trending window %q: %w", window, models.ErrNotFound)
	}

	key := cache.GenerateKey("trending", window)
	page, err := fetch(ctx, g, "trending", key, g.ttl, func(ctx context.Context) ([]models.Summary, error) {
		return g.up.Trending(ctx, window)
	})
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		return nil, fmt.Errorf("trending %s: %w", window, models.ErrNotFound)
	}
	return &Listing{Kind: models.KindMovie, Window: window, Results: page}, nil
}

// FetchGenres lists the catalog's movie genres.
func (g *Gateway) FetchGenres(ctx context.Context) ([]models.Genre, error) {
	key := cache.GenerateKey("genres", "movie")
	return fetch(ctx, g, "genres", key, g.genreTTL, func(ctx context.Context) ([]models.Genre, error) {
		return g.up.Genres(ctx)
	})
}

// availableGenres is how many genre names an UnknownGenreError suggests.
const availableGenres = 10

// FetchByGenre lists popular movies in the named genre. Spoken aliases such
// as "sci-fi" are accepted. An unrecognized name is *UnknownGenreError.
func (g *Gateway) FetchByGenre(ctx context.Context, name string) (*Listing, error) {
	genres, err := g.FetchGenres(ctx)
	if err != nil {
		return nil, err
	}
	genre, ok := matchGenre(genres, name)
	if !ok {
		return nil, &UnknownGenreError{Name: normalizeQuery(name), Available: genreNames(genres, availableGenres)}
	}

	key := cache.GenerateKey("genre", genre.ID)
	page, err := fetch(ctx, g, "genre", key, g.ttl, func(ctx context.Context) ([]models.Summary, error) {
		return g.up.DiscoverByGenre(ctx, genre.ID)
	})
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		return nil, fmt.Errorf("genre %s: %w", genre.Name, models.ErrNotFound)
	}
	return &Listing{Kind: models.KindMovie, Genre: genre.Name, GenreID: genre.ID, Results: page}, nil
}

type providerKey struct {
	Kind    models.MediaKind `json:"kind"`
	ID      int              `json:"id"`
	Country string           `json:"country"`
}

// FetchProviders lists where an item can be streamed, rented, or bought in
// the configured country. An item with no offers returns an empty list.
func (g *Gateway) FetchProviders(ctx context.Context, kind models.MediaKind, id int) (*models.ProviderList, error) {
	if id <= 0 || (kind != models.KindMovie && kind != models.KindTV) {
		return nil, fmt.Errorf("providers for %s %d: %w", kind, id, models.ErrNotFound)
	}
	key := cache.GenerateKey("providers", providerKey{Kind: kind, ID: id, Country: g.country})
	return fetch(ctx, g, "providers", key, g.ttl, func(ctx context.Context) (*models.ProviderList, error) {
		return g.up.WatchProviders(ctx, kind, id, g.country)
	})
}
