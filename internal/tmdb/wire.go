// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package tmdb

// TMDB v3 response shapes. Only the fields the service reads are declared.

type page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
}

type tvResult struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
}

type knownFor struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
}

type personResult struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	KnownForDepartment string     `json:"known_for_department"`
	ProfilePath        string     `json:"profile_path"`
	Popularity         float64    `json:"popularity"`
	KnownFor           []knownFor `json:"known_for"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreList struct {
	Genres []genre `json:"genres"`
}

type named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type castCredit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type crewCredit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type credits struct {
	Cast []castCredit `json:"cast"`
	Crew []crewCredit `json:"crew"`
}

type video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type videoList struct {
	Results []video `json:"results"`
}

type releaseDates struct {
	Results []struct {
		ISO          string `json:"iso_3166_1"`
		ReleaseDates []struct {
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

type contentRatings struct {
	Results []struct {
		ISO    string `json:"iso_3166_1"`
		Rating string `json:"rating"`
	} `json:"results"`
}

type movieDetails struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	Tagline             string            `json:"tagline"`
	Overview            string            `json:"overview"`
	ReleaseDate         string            `json:"release_date"`
	Runtime             int               `json:"runtime"`
	Genres              []genre           `json:"genres"`
	VoteAverage         float64           `json:"vote_average"`
	VoteCount           int               `json:"vote_count"`
	PosterPath          string            `json:"poster_path"`
	BackdropPath        string            `json:"backdrop_path"`
	Homepage            string            `json:"homepage"`
	IMDbID              string            `json:"imdb_id"`
	Status              string            `json:"status"`
	ProductionCompanies []named           `json:"production_companies"`
	Credits             credits           `json:"credits"`
	Videos              videoList         `json:"videos"`
	Similar             page[movieResult] `json:"similar"`
	ReleaseDates        releaseDates      `json:"release_dates"`
}

type tvSeason struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
	PosterPath   string `json:"poster_path"`
}

type tvDetails struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	Tagline          string         `json:"tagline"`
	Overview         string         `json:"overview"`
	FirstAirDate     string         `json:"first_air_date"`
	EpisodeRunTime   []int          `json:"episode_run_time"`
	NumberOfSeasons  int            `json:"number_of_seasons"`
	NumberOfEpisodes int            `json:"number_of_episodes"`
	Genres           []genre        `json:"genres"`
	VoteAverage      float64        `json:"vote_average"`
	VoteCount        int            `json:"vote_count"`
	PosterPath       string         `json:"poster_path"`
	BackdropPath     string         `json:"backdrop_path"`
	Homepage         string         `json:"homepage"`
	Status           string         `json:"status"`
	Networks         []named        `json:"networks"`
	CreatedBy        []named        `json:"created_by"`
	Seasons          []tvSeason     `json:"seasons"`
	Credits          credits        `json:"credits"`
	Videos           videoList      `json:"videos"`
	Similar          page[tvResult] `json:"similar"`
	ContentRatings   contentRatings `json:"content_ratings"`
}

type episode struct {
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
	StillPath     string  `json:"still_path"`
}

type seasonDetails struct {
	ID           int       `json:"id"`
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date"`
	PosterPath   string    `json:"poster_path"`
	Episodes     []episode `json:"episodes"`
}

type movieCredit struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Character   string  `json:"character"`
	Job         string  `json:"job"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

type personDetails struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           string  `json:"birthday"`
	Deathday           string  `json:"deathday"`
	PlaceOfBirth       string  `json:"place_of_birth"`
	ProfilePath        string  `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
	MovieCredits       struct {
		Cast []movieCredit `json:"cast"`
		Crew []movieCredit `json:"crew"`
	} `json:"movie_credits"`
}

type providerEntry struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

type providerCountry struct {
	Link     string          `json:"link"`
	Flatrate []providerEntry `json:"flatrate"`
	Rent     []providerEntry `json:"rent"`
	Buy      []providerEntry `json:"buy"`
	Free     []providerEntry `json:"free"`
}

type watchProviders struct {
	ID      int                        `json:"id"`
	Results map[string]providerCountry `json:"results"`
}
