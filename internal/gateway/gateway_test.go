// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinebot/internal/cache"
	"github.com/tomtom215/cinebot/internal/models"
	"github.com/tomtom215/cinebot/internal/tmdb"
)

// fakeUpstream serves canned catalog data and counts calls per operation.
type fakeUpstream struct {
	mu      sync.Mutex
	calls   map[string]int
	queries []string

	search   map[string][]models.Summary
	items    map[int]*models.CatalogItem
	people   map[int]*models.PersonItem
	genres   []models.Genre
	discover map[int][]models.Summary
	err      error

	// When block is set, SearchMovies waits for it to close or for its
	// context to end. started is closed on the first blocked call.
	block   chan struct{}
	started chan struct{}
	once    sync.Once
}

func newFake() *fakeUpstream {
	return &fakeUpstream{
		calls:    make(map[string]int),
		search:   make(map[string][]models.Summary),
		items:    make(map[int]*models.CatalogItem),
		people:   make(map[int]*models.PersonItem),
		discover: make(map[int][]models.Summary),
	}
}

func (f *fakeUpstream) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeUpstream) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeUpstream) SearchMovies(ctx context.Context, query string) ([]models.Summary, error) {
	f.record("search_movies")
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.block != nil {
		f.once.Do(func() { close(f.started) })
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.search[query], nil
}

func (f *fakeUpstream) SearchTV(_ context.Context, query string) ([]models.Summary, error) {
	f.record("search_tv")
	return f.search[query], f.err
}

func (f *fakeUpstream) SearchPeople(_ context.Context, query string) ([]models.Summary, error) {
	f.record("search_people")
	return f.search[query], f.err
}

func (f *fakeUpstream) Movie(_ context.Context, id int) (*models.CatalogItem, error) {
	f.record("movie")
	if f.err != nil {
		return nil, f.err
	}
	if it, ok := f.items[id]; ok {
		return it, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeUpstream) TV(_ context.Context, id int) (*models.CatalogItem, error) {
	f.record("tv")
	if it, ok := f.items[id]; ok && it.Kind == models.KindTV {
		return it, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeUpstream) Season(_ context.Context, tvID, number int) (*models.Season, error) {
	f.record("season")
	return &models.Season{ShowID: tvID, Number: number, Name: fmt.Sprintf("Season %d", number)}, nil
}

func (f *fakeUpstream) Person(_ context.Context, id int) (*models.PersonItem, error) {
	f.record("person")
	if p, ok := f.people[id]; ok {
		return p, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeUpstream) Trending(_ context.Context, window string) ([]models.Summary, error) {
	f.record("trending_" + window)
	return []models.Summary{{ID: 1, Kind: models.KindMovie, Title: "Dune"}}, nil
}

func (f *fakeUpstream) Genres(context.Context) ([]models.Genre, error) {
	f.record("genres")
	return f.genres, f.err
}

func (f *fakeUpstream) DiscoverByGenre(_ context.Context, genreID int) ([]models.Summary, error) {
	f.record("discover")
	return f.discover[genreID], nil
}

func (f *fakeUpstream) WatchProviders(_ context.Context, kind models.MediaKind, id int, country string) (*models.ProviderList, error) {
	f.record("providers_" + country)
	return &models.ProviderList{Ref: models.Ref{Kind: kind, ID: id}, Country: country}, nil
}

func newTestGateway(t *testing.T, up Upstream, opts Options) *Gateway {
	t.Helper()
	c := cache.New(cache.Config{Name: "test", TTL: time.Minute})
	t.Cleanup(c.Close)
	return New(up, c, opts)
}

func movie(id int, title string, year int) models.Summary {
	return models.Summary{ID: id, Kind: models.KindMovie, Title: title, Year: year}
}

func TestSplitYear(t *testing.T) {
	tests := []struct {
		in        string
		wantTitle string
		wantYear  int
	}{
		{"pretty woman from 1990", "pretty woman", 1990},
		{"Top Gun 1986", "Top Gun", 1986},
		{"alien in 1979", "alien", 1979},
		{"1917", "1917", 0},
		{"  the matrix  ", "the matrix", 0},
		{"blade runner 2049 from 2017", "blade runner 2049", 2017},
	}
	for _, tt := range tests {
		title, year := SplitYear(tt.in)
		if title != tt.wantTitle || year != tt.wantYear {
			t.Errorf("SplitYear(%q) = (%q, %d), want (%q, %d)", tt.in, title, year, tt.wantTitle, tt.wantYear)
		}
	}
}

func TestFetchByQueryYearFilter(t *testing.T) {
	up := newFake()
	up.search["pretty woman"] = []models.Summary{movie(114, "Pretty Woman", 1990), movie(9999, "Pretty Woman Redux", 2011)}
	g := newTestGateway(t, up, Options{})
	ctx := context.Background()

	got, err := g.FetchByQuery(ctx, models.KindMovie, "pretty woman from 1990", Filters{})
	if err != nil {
		t.Fatalf("FetchByQuery() error = %v", err)
	}
	if got.Query != "pretty woman" || got.Year != 1990 || got.YearMismatch {
		t.Errorf("listing = %+v", got)
	}
	if len(got.Results) != 1 || got.Results[0].ID != 114 {
		t.Errorf("results = %+v, want only 114", got.Results)
	}
	if up.queries[0] != "pretty woman" {
		t.Errorf("upstream query = %q, want the title without the year", up.queries[0])
	}

	// Same title, different year: served from cache, falls back to unfiltered.
	got, err = g.FetchByQuery(ctx, models.KindMovie, "Pretty Woman 1985", Filters{})
	if err != nil {
		t.Fatalf("FetchByQuery() error = %v", err)
	}
	if !got.YearMismatch || len(got.Results) != 2 {
		t.Errorf("mismatch listing = %+v", got)
	}

	// Explicit filter wins over parsing.
	got, err = g.FetchByQuery(ctx, models.KindMovie, "pretty woman", Filters{Year: 2011})
	if err != nil || len(got.Results) != 1 || got.Results[0].ID != 9999 {
		t.Errorf("explicit year = %+v, %v", got, err)
	}

	if n := up.count("search_movies"); n != 1 {
		t.Errorf("upstream searches = %d, want 1", n)
	}
}

func TestFetchByQueryTopGun1986(t *testing.T) {
	up := newFake()
	up.search["top gun"] = []models.Summary{movie(361743, "Top Gun: Maverick", 2022), movie(744, "Top Gun", 1986)}
	g := newTestGateway(t, up, Options{})

	got, err := g.FetchByQuery(context.Background(), models.KindMovie, "top gun 1986", Filters{})
	if err != nil {
		t.Fatalf("FetchByQuery() error = %v", err)
	}
	if len(got.Results) != 1 || got.Results[0].ID != 744 {
		t.Errorf("results = %+v, want Top Gun (1986)", got.Results)
	}
}

func TestFetchByQueryYearOnlyTitle(t *testing.T) {
	up := newFake()
	up.search["1917"] = []models.Summary{movie(530915, "1917", 2019)}
	g := newTestGateway(t, up, Options{})

	got, err := g.FetchByQuery(context.Background(), models.KindMovie, "1917", Filters{})
	if err != nil {
		t.Fatalf("FetchByQuery() error = %v", err)
	}
	if got.Year != 0 || got.YearMismatch || got.Results[0].ID != 530915 {
		t.Errorf("listing = %+v", got)
	}
}

func TestFetchByQueryEmptyIsNotFound(t *testing.T) {
	up := newFake()
	g := newTestGateway(t, up, Options{})

	for i := 0; i < 2; i++ {
		_, err := g.FetchByQuery(context.Background(), models.KindMovie, "zzxq", Filters{})
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		var gerr *Error
		if errors.As(err, &gerr) {
			t.Errorf("empty search reported as gateway error: %v", err)
		}
	}
	if n := up.count("search_movies"); n != 1 {
		t.Errorf("empty page should be cached; upstream searches = %d", n)
	}
}

func TestFetchByQueryPersonIgnoresYear(t *testing.T) {
	up := newFake()
	up.search["julia roberts"] = []models.Summary{{ID: 1204, Kind: models.KindPerson, Title: "Julia Roberts"}}
	g := newTestGateway(t, up, Options{})

	got, err := g.FetchByQuery(context.Background(), models.KindPerson, "julia roberts", Filters{Year: 1990})
	if err != nil {
		t.Fatalf("FetchByQuery() error = %v", err)
	}
	if got.Year != 0 || got.YearMismatch || len(got.Results) != 1 {
		t.Errorf("person listing = %+v", got)
	}
}

func TestConcurrentIdenticalQueriesShareOneFetch(t *testing.T) {
	up := newFake()
	up.search["Alien"] = []models.Summary{movie(348, "Alien", 1979)}
	up.block = make(chan struct{})
	up.started = make(chan struct{})
	g := newTestGateway(t, up, Options{})

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := g.FetchByQuery(context.Background(), models.KindMovie, "Alien", Filters{})
			if err == nil && got.Results[0].ID != 348 {
				err = fmt.Errorf("wrong result %+v", got.Results)
			}
			errs <- err
		}()
	}

	<-up.started
	time.Sleep(50 * time.Millisecond)
	close(up.block)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("caller error = %v", err)
		}
	}
	if n := up.count("search_movies"); n != 1 {
		t.Errorf("upstream searches = %d, want exactly 1", n)
	}
}

func TestFetchTimeout(t *testing.T) {
	up := newFake()
	up.block = make(chan struct{})
	up.started = make(chan struct{})
	g := newTestGateway(t, up, Options{Timeout: 20 * time.Millisecond})

	_, err := g.FetchByQuery(context.Background(), models.KindMovie, "slow", Filters{})
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Reason != ReasonTimeout {
		t.Fatalf("err = %v, want timeout gateway error", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err should wrap DeadlineExceeded: %v", err)
	}
}

func TestAbandonedFetchStillFillsCache(t *testing.T) {
	up := newFake()
	up.search["heat"] = []models.Summary{movie(949, "Heat", 1995)}
	up.block = make(chan struct{})
	up.started = make(chan struct{})
	g := newTestGateway(t, up, Options{Timeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := g.FetchByQuery(ctx, models.KindMovie, "heat", Filters{})
		done <- err
	}()

	<-up.started
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("abandoned caller err = %v, want context.Canceled", err)
	}

	close(up.block)
	deadline := time.Now().Add(2 * time.Second)
	for g.cache.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	got, err := g.FetchByQuery(context.Background(), models.KindMovie, "heat", Filters{})
	if err != nil || got.Results[0].ID != 949 {
		t.Fatalf("FetchByQuery() after abandon = %+v, %v", got, err)
	}
	if n := up.count("search_movies"); n != 1 {
		t.Errorf("upstream searches = %d, want 1", n)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason Reason
		notFound   bool
	}{
		{"status", &tmdb.StatusError{StatusCode: 502, Path: "/movie/1"}, ReasonUpstream, false},
		{"malformed", fmt.Errorf("decode: %w", tmdb.ErrMalformed), ReasonMalformed, false},
		{"deadline", context.DeadlineExceeded, ReasonTimeout, false},
		{"not found", models.ErrNotFound, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newFake()
			up.err = tt.err
			g := newTestGateway(t, up, Options{})

			_, err := g.FetchItem(context.Background(), models.KindMovie, 1)
			if tt.notFound {
				var gerr *Error
				if !errors.Is(err, models.ErrNotFound) || errors.As(err, &gerr) {
					t.Errorf("err = %v, want bare ErrNotFound", err)
				}
				return
			}
			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if gerr.Reason != tt.wantReason || gerr.Op != "item" {
				t.Errorf("Error = %+v, want reason %s", gerr, tt.wantReason)
			}
		})
	}
}

func TestFetchItemCachesByKindAndID(t *testing.T) {
	up := newFake()
	up.items[603] = &models.CatalogItem{ID: 603, Kind: models.KindMovie, Title: "The Matrix"}
	g := newTestGateway(t, up, Options{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		it, err := g.FetchItem(ctx, models.KindMovie, 603)
		if err != nil || it.Title != "The Matrix" {
			t.Fatalf("FetchItem() = %+v, %v", it, err)
		}
	}
	if n := up.count("movie"); n != 1 {
		t.Errorf("upstream movie calls = %d, want 1", n)
	}

	if _, err := g.FetchItem(ctx, models.KindTV, 603); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("tv/603 err = %v, want ErrNotFound", err)
	}
	if _, err := g.FetchItem(ctx, models.KindMovie, 0); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("id 0 err = %v, want ErrNotFound", err)
	}
}

func TestFetchByGenre(t *testing.T) {
	up := newFake()
	up.genres = []models.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}, {ID: 35, Name: "Comedy"}}
	up.discover[878] = []models.Summary{movie(603, "The Matrix", 1999)}
	g := newTestGateway(t, up, Options{})
	ctx := context.Background()

	got, err := g.FetchByGenre(ctx, "Sci-Fi")
	if err != nil {
		t.Fatalf("FetchByGenre(Sci-Fi) error = %v", err)
	}
	if got.Genre != "Science Fiction" || got.GenreID != 878 || got.Results[0].ID != 603 {
		t.Errorf("listing = %+v", got)
	}

	_, err = g.FetchByGenre(ctx, "polka")
	var uge *UnknownGenreError
	if !errors.As(err, &uge) {
		t.Fatalf("err = %v, want UnknownGenreError", err)
	}
	if !errors.Is(err, models.ErrNotFound) {
		t.Error("UnknownGenreError should unwrap to ErrNotFound")
	}
	if len(uge.Available) != 3 || uge.Available[1] != "science fiction" {
		t.Errorf("Available = %v", uge.Available)
	}

	if n := up.count("genres"); n != 1 {
		t.Errorf("genre list fetched %d times, want 1", n)
	}
}

func TestFetchTrendingDefaultsToWeek(t *testing.T) {
	up := newFake()
	g := newTestGateway(t, up, Options{})

	got, err := g.FetchTrending(context.Background(), "")
	if err != nil || got.Window != WindowWeek {
		t.Fatalf("FetchTrending() = %+v, %v", got, err)
	}
	if up.count("trending_week") != 1 {
		t.Error("expected a weekly trending call")
	}
	if _, err := g.FetchTrending(context.Background(), "month"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("month window err = %v", err)
	}
}

func TestFetchProvidersUsesCountry(t *testing.T) {
	up := newFake()
	g := newTestGateway(t, up, Options{Country: "DE"})

	got, err := g.FetchProviders(context.Background(), models.KindMovie, 603)
	if err != nil || got.Country != "DE" {
		t.Fatalf("FetchProviders() = %+v, %v", got, err)
	}
	if up.count("providers_DE") != 1 {
		t.Error("provider lookup should use the configured country")
	}
}

func TestPersistentTierServesColdMemory(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	p := cache.NewPersistentFromDB(db)

	warm := newFake()
	warm.items[603] = &models.CatalogItem{ID: 603, Kind: models.KindMovie, Title: "The Matrix", Genres: []string{"Action"}}
	if _, err := newTestGateway(t, warm, Options{Persistent: p}).FetchItem(context.Background(), models.KindMovie, 603); err != nil {
		t.Fatalf("warm FetchItem() error = %v", err)
	}

	cold := newFake()
	it, err := newTestGateway(t, cold, Options{Persistent: p}).FetchItem(context.Background(), models.KindMovie, 603)
	if err != nil || it.Title != "The Matrix" || len(it.Genres) != 1 {
		t.Fatalf("cold FetchItem() = %+v, %v", it, err)
	}
	if n := cold.count("movie"); n != 0 {
		t.Errorf("cold gateway reached upstream %d times, want 0", n)
	}
}

func TestBreakerStateStartsClosed(t *testing.T) {
	g := newTestGateway(t, newFake(), Options{})
	if got := g.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}
