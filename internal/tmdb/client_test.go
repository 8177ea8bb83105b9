// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cinebot/internal/config"
	"github.com/tomtom215/cinebot/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(&config.TMDBConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		ImageBaseURL: "https://img.example/t/p",
		Language:     "en-US",
		Region:       "US",
		Timeout:      5 * time.Second,
	})
	c.baseDelay = time.Millisecond
	return c
}

func TestSearchMovies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s, want /search/movie", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Pretty Woman" {
			t.Errorf("query = %q, want Pretty Woman", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q, want en-US", got)
		}
		w.Write([]byte(`{"page":1,"results":[
			{"id":114,"title":"Pretty Woman","release_date":"1990-03-23","poster_path":"/p.jpg","vote_average":7.4},
			{"id":99,"title":"Pretty Woman 2","release_date":""}
		]}`))
	})

	got, err := c.SearchMovies(context.Background(), "Pretty Woman")
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 114 || got[0].Year != 1990 || got[0].Kind != models.KindMovie {
		t.Errorf("first = %+v", got[0])
	}
	if got[0].PosterURL != "https://img.example/t/p/w500/p.jpg" {
		t.Errorf("PosterURL = %q", got[0].PosterURL)
	}
	if got[1].Year != 0 || got[1].PosterURL != "" {
		t.Errorf("undated entry = %+v", got[1])
	}
}

func TestReadTokenUsesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		if r.URL.Query().Has("api_key") {
			t.Error("api_key should not be sent with a read token")
		}
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
	}))
	defer server.Close()

	c := NewClient(&config.TMDBConfig{
		APIKey:       "k",
		ReadToken:    "tok",
		BaseURL:      server.URL,
		ImageBaseURL: "https://img.example/",
		Timeout:      time.Second,
	})
	genres, err := c.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if len(genres) != 1 || genres[0].Name != "Action" {
		t.Errorf("genres = %+v", genres)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, `{}`, func(err error) bool { return errors.Is(err, models.ErrNotFound) }},
		{"server error", http.StatusBadGateway, `bad`, func(err error) bool {
			var se *StatusError
			return errors.As(err, &se) && se.StatusCode == http.StatusBadGateway
		}},
		{"malformed", http.StatusOK, `{"id":`, func(err error) bool { return errors.Is(err, ErrMalformed) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Movie(context.Background(), 1)
			if err == nil || !tt.check(err) {
				t.Errorf("Movie() error = %v", err)
			}
		})
	}
}

func TestRateLimitRetry(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"results":[]}`))
	})

	if _, err := c.Trending(context.Background(), "week"); err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestRateLimitExhausted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Trending(context.Background(), "day")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Trending() error = %v, want 429 StatusError", err)
	}
}

func TestMovieDetailsTrims(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("append_to_response"); got != "credits,videos,similar,release_dates" {
			t.Errorf("append_to_response = %q", got)
		}
		var b strings.Builder
		b.WriteString(`{"id":744,"title":"Top Gun","tagline":"Up there with the best","release_date":"1986-05-16","runtime":110,`)
		b.WriteString(`"genres":[{"id":28,"name":"Action"},{"id":18,"name":"Drama"}],`)
		b.WriteString(`"credits":{"cast":[`)
		for i := 0; i < 12; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`{"id":` + string(rune('0'+i%10)) + `,"name":"Actor","character":"Role","order":0}`)
		}
		b.WriteString(`],"crew":[{"id":1,"name":"Tony Scott","job":"Director"},{"id":2,"name":"Grip","job":"Key Grip"}]},`)
		b.WriteString(`"videos":{"results":[{"key":"v1","site":"Vimeo","type":"Trailer"},{"key":"y1","site":"YouTube","type":"Teaser"},{"key":"y2","site":"YouTube","type":"Trailer"}]},`)
		b.WriteString(`"similar":{"results":[{"id":1},{"id":2},{"id":3},{"id":4},{"id":5},{"id":6},{"id":7}]},`)
		b.WriteString(`"release_dates":{"results":[{"iso_3166_1":"GB","release_dates":[{"certification":"15"}]},{"iso_3166_1":"US","release_dates":[{"certification":""},{"certification":"PG"}]}]}}`)
		w.Write([]byte(b.String()))
	})

	item, err := c.Movie(context.Background(), 744)
	if err != nil {
		t.Fatalf("Movie() error = %v", err)
	}
	if len(item.Cast) != maxCast {
		t.Errorf("cast = %d, want %d", len(item.Cast), maxCast)
	}
	if d, ok := item.Director(); len(item.Crew) != 1 || !ok || d.Name != "Tony Scott" {
		t.Errorf("crew = %+v", item.Crew)
	}
	if len(item.Videos) != 2 {
		t.Errorf("videos = %d, want 2 YouTube entries", len(item.Videos))
	}
	if tr, ok := item.Trailer(); !ok || tr.Key != "y2" {
		t.Errorf("Trailer() = %+v, want y2", tr)
	}
	if len(item.Similar) != maxSimilar {
		t.Errorf("similar = %d, want %d", len(item.Similar), maxSimilar)
	}
	if item.ContentRating != "PG" {
		t.Errorf("ContentRating = %q, want PG", item.ContentRating)
	}
	if item.Year != 1986 || item.Runtime != 110 {
		t.Errorf("Year/Runtime = %d/%d", item.Year, item.Runtime)
	}
}

func TestMovieCertificationDefault(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5,"title":"Obscure","release_dates":{"results":[{"iso_3166_1":"FR","release_dates":[{"certification":"U"}]}]}}`))
	})
	item, err := c.Movie(context.Background(), 5)
	if err != nil {
		t.Fatalf("Movie() error = %v", err)
	}
	if item.ContentRating != "NR" {
		t.Errorf("ContentRating = %q, want NR", item.ContentRating)
	}
}

func TestPersonFilmography(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1204,"name":"Julia Roberts","known_for_department":"Acting",
			"movie_credits":{
				"cast":[
					{"id":114,"title":"Pretty Woman","release_date":"1990-03-23","character":"Vivian"},
					{"id":2,"title":"Undated","release_date":""},
					{"id":3,"title":"Eat Pray Love","release_date":"2010-08-13"}
				],
				"crew":[
					{"id":3,"title":"Eat Pray Love","release_date":"2010-08-13","job":"Producer"},
					{"id":4,"title":"Produced","release_date":"2015-01-01","job":"Producer"}
				]
			}}`))
	})

	p, err := c.Person(context.Background(), 1204)
	if err != nil {
		t.Fatalf("Person() error = %v", err)
	}
	wantIDs := []int{4, 3, 114, 2}
	if len(p.Filmography) != len(wantIDs) {
		t.Fatalf("filmography = %d entries, want %d", len(p.Filmography), len(wantIDs))
	}
	for i, id := range wantIDs {
		if p.Filmography[i].ID != id {
			t.Errorf("filmography[%d] = %d, want %d", i, p.Filmography[i].ID, id)
		}
	}
	if p.Filmography[1].Role != "" {
		t.Errorf("cast credit role should win for duplicate id, got %q", p.Filmography[1].Role)
	}
	if p.Filmography[2].Role != "Vivian" {
		t.Errorf("role = %q, want Vivian", p.Filmography[2].Role)
	}
}

func TestWatchProvidersMerge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/744/watch/providers" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":744,"results":{"US":{
			"link":"https://tmdb.example/watch",
			"flatrate":[{"provider_id":8,"provider_name":"Netflix","display_priority":5}],
			"rent":[{"provider_id":2,"provider_name":"Apple TV","display_priority":1}],
			"buy":[{"provider_id":2,"provider_name":"Apple TV","display_priority":1}]
		}}}`))
	})

	list, err := c.WatchProviders(context.Background(), models.KindMovie, 744, "US")
	if err != nil {
		t.Fatalf("WatchProviders() error = %v", err)
	}
	if got := list.Names(); len(got) != 2 || got[0] != "Apple TV" || got[1] != "Netflix" {
		t.Errorf("Names() = %v, want [Apple TV Netflix]", got)
	}
	if offers := list.Providers[0].Offers; len(offers) != 2 || offers[0] != models.OfferRent || offers[1] != models.OfferBuy {
		t.Errorf("Apple TV offers = %v", offers)
	}

	empty, err := c.WatchProviders(context.Background(), models.KindMovie, 744, "DE")
	if err != nil {
		t.Fatalf("WatchProviders(DE) error = %v", err)
	}
	if !empty.Empty() {
		t.Errorf("DE providers = %+v, want empty", empty.Providers)
	}
}
