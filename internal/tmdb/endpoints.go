// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/tomtom215/cinebot/internal/models"
)

// Trims applied to detail payloads.
const (
	maxCast       = 10
	maxCrew       = 5
	maxVideos     = 3
	maxSimilar    = 6
	maxKnownFor   = 3
	defaultRating = "NR"
)

var keyCrewJobs = map[string]bool{
	"Director":   true,
	"Producer":   true,
	"Screenplay": true,
	"Writer":     true,
}

// SearchMovies runs /search/movie for the first page of results.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]models.Summary, error) {
	var resp page[movieResult]
	q := url.Values{"query": {query}, "page": {"1"}, "include_adult": {"false"}}
	if err := c.getJSON(ctx, "search_movie", "/search/movie", q, &resp); err != nil {
		return nil, err
	}
	return c.movieSummaries(resp.Results), nil
}

// SearchTV runs /search/tv for the first page of results.
func (c *Client) SearchTV(ctx context.Context, query string) ([]models.Summary, error) {
	var resp page[tvResult]
	q := url.Values{"query": {query}, "page": {"1"}, "include_adult": {"false"}}
	if err := c.getJSON(ctx, "search_tv", "/search/tv", q, &resp); err != nil {
		return nil, err
	}
	return c.tvSummaries(resp.Results), nil
}

// SearchPeople runs /search/person for the first page of results.
func (c *Client) SearchPeople(ctx context.Context, query string) ([]models.Summary, error) {
	var resp page[personResult]
	q := url.Values{"query": {query}, "page": {"1"}, "include_adult": {"false"}}
	if err := c.getJSON(ctx, "search_person", "/search/person", q, &resp); err != nil {
		return nil, err
	}

	out := make([]models.Summary, 0, len(resp.Results))
	for _, p := range resp.Results {
		s := models.Summary{
			ID:         p.ID,
			Kind:       models.KindPerson,
			Title:      p.Name,
			PosterURL:  c.imageURL(profileSize, p.ProfilePath),
			Popularity: p.Popularity,
			Department: p.KnownForDepartment,
		}
		for i, kf := range p.KnownFor {
			if i == maxKnownFor {
				break
			}
			title := kf.Title
			if title == "" {
				title = kf.Name
			}
			s.KnownFor = append(s.KnownFor, title)
		}
		out = append(out, s)
	}
	return out, nil
}

// Movie fetches a movie with credits, videos, similar titles, and release dates.
func (c *Client) Movie(ctx context.Context, id int) (*models.CatalogItem, error) {
	var d movieDetails
	q := url.Values{"append_to_response": {"credits,videos,similar,release_dates"}}
	if err := c.getJSON(ctx, "movie_details", "/movie/"+strconv.Itoa(id), q, &d); err != nil {
		return nil, err
	}

	item := &models.CatalogItem{
		ID:            d.ID,
		Kind:          models.KindMovie,
		Title:         d.Title,
		Tagline:       d.Tagline,
		Overview:      d.Overview,
		ReleaseDate:   d.ReleaseDate,
		Year:          models.YearFromDate(d.ReleaseDate),
		Runtime:       d.Runtime,
		Genres:        genreNames(d.Genres),
		Rating:        d.VoteAverage,
		VoteCount:     d.VoteCount,
		PosterURL:     c.imageURL(posterSize, d.PosterPath),
		BackdropURL:   c.imageURL(backdropSize, d.BackdropPath),
		Homepage:      d.Homepage,
		IMDbID:        d.IMDbID,
		Status:        d.Status,
		ContentRating: c.movieCertification(d.ReleaseDates),
		Companies:     names(d.ProductionCompanies, 3),
		Cast:          c.cast(d.Credits.Cast),
		Crew:          c.crew(d.Credits.Crew),
		Videos:        youTubeVideos(d.Videos.Results),
		Similar:       c.movieSummaries(truncate(d.Similar.Results, maxSimilar)),
	}
	return item, nil
}

// TV fetches a show with credits, videos, similar shows, and content ratings.
func (c *Client) TV(ctx context.Context, id int) (*models.CatalogItem, error) {
	var d tvDetails
	q := url.Values{"append_to_response": {"credits,videos,similar,content_ratings"}}
	if err := c.getJSON(ctx, "tv_details", "/tv/"+strconv.Itoa(id), q, &d); err != nil {
		return nil, err
	}

	runtime := 0
	if len(d.EpisodeRunTime) > 0 {
		runtime = d.EpisodeRunTime[0]
	}

	seasons := make([]models.SeasonSummary, 0, len(d.Seasons))
	for _, s := range d.Seasons {
		seasons = append(seasons, models.SeasonSummary{
			Number:       s.SeasonNumber,
			Name:         s.Name,
			EpisodeCount: s.EpisodeCount,
			AirDate:      s.AirDate,
			PosterURL:    c.imageURL(posterSize, s.PosterPath),
		})
	}

	item := &models.CatalogItem{
		ID:            d.ID,
		Kind:          models.KindTV,
		Title:         d.Name,
		Tagline:       d.Tagline,
		Overview:      d.Overview,
		ReleaseDate:   d.FirstAirDate,
		Year:          models.YearFromDate(d.FirstAirDate),
		Runtime:       runtime,
		Seasons:       d.NumberOfSeasons,
		Episodes:      d.NumberOfEpisodes,
		Genres:        genreNames(d.Genres),
		Rating:        d.VoteAverage,
		VoteCount:     d.VoteCount,
		PosterURL:     c.imageURL(posterSize, d.PosterPath),
		BackdropURL:   c.imageURL(backdropSize, d.BackdropPath),
		Homepage:      d.Homepage,
		Status:        d.Status,
		ContentRating: c.tvRating(d.ContentRatings),
		Networks:      names(d.Networks, 3),
		CreatedBy:     names(d.CreatedBy, 0),
		Cast:          c.cast(d.Credits.Cast),
		Crew:          c.crew(d.Credits.Crew),
		Videos:        youTubeVideos(d.Videos.Results),
		Similar:       c.tvSummaries(truncate(d.Similar.Results, maxSimilar)),
		SeasonList:    seasons,
	}
	return item, nil
}

// Season fetches one season of a show with its episodes.
func (c *Client) Season(ctx context.Context, tvID, number int) (*models.Season, error) {
	var d seasonDetails
	path := fmt.Sprintf("/tv/%d/season/%d", tvID, number)
	if err := c.getJSON(ctx, "season_details", path, nil, &d); err != nil {
		return nil, err
	}

	season := &models.Season{
		ShowID:    tvID,
		Number:    d.SeasonNumber,
		Name:      d.Name,
		Overview:  d.Overview,
		AirDate:   d.AirDate,
		PosterURL: c.imageURL(posterSize, d.PosterPath),
		Episodes:  make([]models.Episode, 0, len(d.Episodes)),
	}
	for _, e := range d.Episodes {
		season.Episodes = append(season.Episodes, models.Episode{
			Number:   e.EpisodeNumber,
			Name:     e.Name,
			Overview: e.Overview,
			AirDate:  e.AirDate,
			Runtime:  e.Runtime,
			Rating:   e.VoteAverage,
			StillURL: c.imageURL(stillSize, e.StillPath),
		})
	}
	return season, nil
}

// Person fetches a person and builds their movie filmography.
// Cast and crew credits are merged, deduplicated by movie id, and ordered
// by release date with the newest first; undated credits sort last.
func (c *Client) Person(ctx context.Context, id int) (*models.PersonItem, error) {
	var d personDetails
	q := url.Values{"append_to_response": {"movie_credits"}}
	if err := c.getJSON(ctx, "person_details", "/person/"+strconv.Itoa(id), q, &d); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(d.MovieCredits.Cast)+len(d.MovieCredits.Crew))
	films := make([]models.Summary, 0, len(d.MovieCredits.Cast)+len(d.MovieCredits.Crew))
	add := func(mc movieCredit, role string) {
		if seen[mc.ID] {
			return
		}
		seen[mc.ID] = true
		films = append(films, models.Summary{
			ID:          mc.ID,
			Kind:        models.KindMovie,
			Title:       mc.Title,
			Year:        models.YearFromDate(mc.ReleaseDate),
			ReleaseDate: mc.ReleaseDate,
			PosterURL:   c.imageURL(posterSize, mc.PosterPath),
			Rating:      mc.VoteAverage,
			Role:        role,
		})
	}
	for _, mc := range d.MovieCredits.Cast {
		add(mc, mc.Character)
	}
	for _, mc := range d.MovieCredits.Crew {
		add(mc, mc.Job)
	}
	sort.SliceStable(films, func(i, j int) bool {
		return sortableDate(films[i].ReleaseDate) > sortableDate(films[j].ReleaseDate)
	})

	return &models.PersonItem{
		ID:           d.ID,
		Name:         d.Name,
		Department:   d.KnownForDepartment,
		Biography:    d.Biography,
		Birthday:     d.Birthday,
		Deathday:     d.Deathday,
		PlaceOfBirth: d.PlaceOfBirth,
		ProfileURL:   c.imageURL(profileSize, d.ProfilePath),
		Popularity:   d.Popularity,
		Filmography:  films,
	}, nil
}

// Trending returns trending movies for window ("day" or "week").
func (c *Client) Trending(ctx context.Context, window string) ([]models.Summary, error) {
	var resp page[movieResult]
	if err := c.getJSON(ctx, "trending", "/trending/movie/"+window, nil, &resp); err != nil {
		return nil, err
	}
	return c.movieSummaries(resp.Results), nil
}

// Genres returns the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var resp genreList
	if err := c.getJSON(ctx, "genres", "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Genre, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		out = append(out, models.Genre{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

// DiscoverByGenre returns the most popular movies in a genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int) ([]models.Summary, error) {
	var resp page[movieResult]
	q := url.Values{
		"with_genres": {strconv.Itoa(genreID)},
		"sort_by":     {"popularity.desc"},
		"page":        {"1"},
	}
	if err := c.getJSON(ctx, "discover", "/discover/movie", q, &resp); err != nil {
		return nil, err
	}
	return c.movieSummaries(resp.Results), nil
}

// WatchProviders returns the providers offering a title in country.
// All offer types are merged into one list, deduplicated by provider id,
// and ordered by display priority.
func (c *Client) WatchProviders(ctx context.Context, kind models.MediaKind, id int, country string) (*models.ProviderList, error) {
	var resp watchProviders
	path := fmt.Sprintf("/%s/%d/watch/providers", kind, id)
	if err := c.getJSON(ctx, "watch_providers", path, nil, &resp); err != nil {
		return nil, err
	}

	list := &models.ProviderList{
		Ref:       models.Ref{Kind: kind, ID: id},
		Country:   country,
		Providers: []models.Provider{},
	}
	cd, ok := resp.Results[country]
	if !ok {
		return list, nil
	}
	list.Link = cd.Link

	index := make(map[int]int)
	merge := func(offer string, entries []providerEntry) {
		for _, e := range entries {
			if i, ok := index[e.ProviderID]; ok {
				list.Providers[i].Offers = append(list.Providers[i].Offers, offer)
				continue
			}
			index[e.ProviderID] = len(list.Providers)
			list.Providers = append(list.Providers, models.Provider{
				ID:              e.ProviderID,
				Name:            e.ProviderName,
				LogoURL:         c.imageURL(logoSize, e.LogoPath),
				DisplayPriority: e.DisplayPriority,
				Offers:          []string{offer},
			})
		}
	}
	merge(models.OfferFlatrate, cd.Flatrate)
	merge(models.OfferRent, cd.Rent)
	merge(models.OfferBuy, cd.Buy)
	merge(models.OfferFree, cd.Free)

	sort.SliceStable(list.Providers, func(i, j int) bool {
		return list.Providers[i].DisplayPriority < list.Providers[j].DisplayPriority
	})
	return list, nil
}

func (c *Client) movieSummaries(in []movieResult) []models.Summary {
	out := make([]models.Summary, 0, len(in))
	for _, m := range in {
		out = append(out, models.Summary{
			ID:          m.ID,
			Kind:        models.KindMovie,
			Title:       m.Title,
			Year:        models.YearFromDate(m.ReleaseDate),
			ReleaseDate: m.ReleaseDate,
			Overview:    m.Overview,
			PosterURL:   c.imageURL(posterSize, m.PosterPath),
			Rating:      m.VoteAverage,
			Popularity:  m.Popularity,
		})
	}
	return out
}

func (c *Client) tvSummaries(in []tvResult) []models.Summary {
	out := make([]models.Summary, 0, len(in))
	for _, t := range in {
		out = append(out, models.Summary{
			ID:          t.ID,
			Kind:        models.KindTV,
			Title:       t.Name,
			Year:        models.YearFromDate(t.FirstAirDate),
			ReleaseDate: t.FirstAirDate,
			Overview:    t.Overview,
			PosterURL:   c.imageURL(posterSize, t.PosterPath),
			Rating:      t.VoteAverage,
			Popularity:  t.Popularity,
		})
	}
	return out
}

func (c *Client) cast(in []castCredit) []models.Credit {
	in = truncate(in, maxCast)
	out := make([]models.Credit, 0, len(in))
	for _, p := range in {
		out = append(out, models.Credit{
			ID:         p.ID,
			Name:       p.Name,
			Character:  p.Character,
			ProfileURL: c.imageURL(profileSize, p.ProfilePath),
			Order:      p.Order,
		})
	}
	return out
}

func (c *Client) crew(in []crewCredit) []models.Credit {
	out := make([]models.Credit, 0, maxCrew)
	for _, p := range in {
		if !keyCrewJobs[p.Job] {
			continue
		}
		out = append(out, models.Credit{
			ID:         p.ID,
			Name:       p.Name,
			Job:        p.Job,
			Department: p.Department,
			ProfileURL: c.imageURL(profileSize, p.ProfilePath),
		})
		if len(out) == maxCrew {
			break
		}
	}
	return out
}

func (c *Client) movieCertification(rd releaseDates) string {
	for _, country := range rd.Results {
		if country.ISO != c.region {
			continue
		}
		for _, r := range country.ReleaseDates {
			if r.Certification != "" {
				return r.Certification
			}
		}
		break
	}
	return defaultRating
}

func (c *Client) tvRating(cr contentRatings) string {
	for _, r := range cr.Results {
		if r.ISO == c.region && r.Rating != "" {
			return r.Rating
		}
	}
	return defaultRating
}

func youTubeVideos(in []video) []models.Video {
	out := make([]models.Video, 0, maxVideos)
	for _, v := range in {
		if v.Site != "YouTube" {
			continue
		}
		out = append(out, models.Video{
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
			URL:  "https://www.youtube.com/watch?v=" + v.Key,
		})
		if len(out) == maxVideos {
			break
		}
	}
	return out
}

func genreNames(in []genre) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		out = append(out, g.Name)
	}
	return out
}

// names returns up to limit names; limit <= 0 means all.
func names(in []named, limit int) []string {
	if limit > 0 {
		in = truncate(in, limit)
	}
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.Name)
	}
	return out
}

func truncate[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func sortableDate(d string) string {
	if d == "" {
		return "0000"
	}
	return d
}
