// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package events

import "github.com/tomtom215/cinebot/internal/models"

// Detail sub-views of an item.
const (
	ViewOverview = "overview"
	ViewCast     = "cast"
)

type MovieSearchResults struct {
	Query        string `json:"query"`
	Year         int    `json:"year,omitempty"`
	YearMismatch bool   `json:"year_mismatch"`
	Listing
}

type TVSearchResults struct {
	Query        string `json:"query"`
	Year         int    `json:"year,omitempty"`
	YearMismatch bool   `json:"year_mismatch"`
	Listing
}

type PersonSearchResults struct {
	Query string `json:"query"`
	Listing
}

// MovieDetails renders a movie. View selects the overview or cast layout.
type MovieDetails struct {
	View string              `json:"view"`
	Item *models.CatalogItem `json:"item"`
}

type TVDetails struct {
	View string              `json:"view"`
	Item *models.CatalogItem `json:"item"`
}

type SeasonDetails struct {
	Show   models.Summary `json:"show"`
	Season *models.Season `json:"season"`
}

// PersonDetails renders a person with their numbered filmography.
type PersonDetails struct {
	Person *models.PersonItem `json:"person"`
	Listing
}

type TrendingMovies struct {
	Window string `json:"window"`
	Listing
}

type GenreMovies struct {
	Genre   string `json:"genre"`
	GenreID int    `json:"genre_id"`
	Listing
}

type SimilarMovies struct {
	Source models.Summary `json:"source"`
	Listing
}

type SimilarTV struct {
	Source models.Summary `json:"source"`
	Listing
}

type WatchProviders struct {
	Item      models.Summary       `json:"item"`
	Providers *models.ProviderList `json:"providers"`
}

type TrailerAvailable struct {
	Item  models.Summary `json:"item"`
	Video models.Video   `json:"video"`
}

type VideoAvailable struct {
	Item   models.Summary `json:"item"`
	Video  models.Video   `json:"video"`
	Videos []models.Video `json:"videos"`
}

// WatchlistUpdated carries the full watchlist after the change.
type WatchlistUpdated struct {
	Item  models.WatchlistItem   `json:"item"`
	Added bool                   `json:"added"`
	Count int                    `json:"count"`
	Items []models.WatchlistItem `json:"items"`
}

type ClearDisplay struct{}

func (MovieSearchResults) EventType() Type  { return TypeMovieSearchResults }
func (TVSearchResults) EventType() Type     { return TypeTVSearchResults }
func (PersonSearchResults) EventType() Type { return TypePersonSearchResults }
func (MovieDetails) EventType() Type        { return TypeMovieDetails }
func (TVDetails) EventType() Type           { return TypeTVDetails }
func (SeasonDetails) EventType() Type       { return TypeSeasonDetails }
func (PersonDetails) EventType() Type       { return TypePersonDetails }
func (TrendingMovies) EventType() Type      { return TypeTrendingMovies }
func (GenreMovies) EventType() Type         { return TypeGenreMovies }
func (SimilarMovies) EventType() Type       { return TypeSimilarMovies }
func (SimilarTV) EventType() Type           { return TypeSimilarTV }
func (WatchProviders) EventType() Type      { return TypeWatchProviders }
func (TrailerAvailable) EventType() Type    { return TypeTrailerAvailable }
func (VideoAvailable) EventType() Type      { return TypeVideoAvailable }
func (WatchlistUpdated) EventType() Type    { return TypeWatchlistUpdated }
func (ClearDisplay) EventType() Type        { return TypeClearDisplay }

// Clear is the clear_display event.
func Clear() Event {
	return New(ClearDisplay{})
}
