// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/gateway"
	"github.com/tomtom215/cinebot/internal/models"
	"github.com/tomtom215/cinebot/internal/session"
	"github.com/tomtom215/cinebot/internal/validation"
)

// Error codes returned by ErrorCode.
const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeMissingSelector   = "MISSING_SELECTOR"
	CodeAmbiguousSelector = "AMBIGUOUS_SELECTOR"
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = validation.ErrorCode
	CodeSessionClosed     = "SESSION_CLOSED"
	CodeUnknownAction     = "UNKNOWN_ACTION"
	CodeTimeout           = "TIMEOUT"
	CodeInternal          = "INTERNAL_ERROR"
)

const overviewLimit = 200

// spoken is how each action is phrased back to the user.
var spoken = map[conversation.Action]string{
	conversation.ActionSearchMovie:       "search for a movie",
	conversation.ActionSearchTV:          "search for a TV show",
	conversation.ActionSearchPerson:      "look up a person",
	conversation.ActionGetTrending:       "show trending movies",
	conversation.ActionGetMoviesByGenre:  "browse by genre",
	conversation.ActionGetMovieDetails:   "open a movie's details",
	conversation.ActionGetTVDetails:      "open a TV show's details",
	conversation.ActionGetSeasonDetails:  "show a season",
	conversation.ActionGetCastCrew:       "show the cast",
	conversation.ActionGetSimilar:        "find similar titles",
	conversation.ActionGetWatchProviders: "show where to watch",
	conversation.ActionGetVideos:         "play the trailer",
	conversation.ActionAddToWatchlist:    "add it to your watchlist",
	conversation.ActionClearDisplay:      "clear the screen",
	conversation.ActionGoBack:            "go back",
}

// ErrorCode maps a turn error onto the API error taxonomy.
func ErrorCode(err error) string {
	var (
		ite *conversation.InvalidTransitionError
		ase *conversation.AmbiguousSelectorError
		ge  *gateway.Error
		ve  *validation.RequestValidationError
		ae  *ArgumentError
		ue  *UnknownActionError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ite):
		return CodeInvalidTransition
	case errors.Is(err, conversation.ErrMissingSelector):
		return CodeMissingSelector
	case errors.As(err, &ase):
		return CodeAmbiguousSelector
	case errors.As(err, &ue):
		return CodeUnknownAction
	case errors.As(err, &ve), errors.As(err, &ae):
		return CodeValidation
	case errors.Is(err, session.ErrClosed):
		return CodeSessionClosed
	case errors.As(err, &ge):
		return "GATEWAY_" + strings.ToUpper(string(ge.Reason))
	case errors.Is(err, models.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CodeTimeout
	default:
		return CodeInternal
	}
}

// Reply phrases a turn error for speech.
func Reply(err error) string {
	if err == nil {
		return ""
	}
	var (
		te  *TurnError
		ite *conversation.InvalidTransitionError
		ase *conversation.AmbiguousSelectorError
		uge *gateway.UnknownGenreError
		ge  *gateway.Error
		ve  *validation.RequestValidationError
		ae  *ArgumentError
		ue  *UnknownActionError
	)
	var (
		action  conversation.Action
		subject string
	)
	if errors.As(err, &te) {
		action, subject = te.Action, te.Subject
	}

	switch {
	case errors.As(err, &ite):
		return invalidTransitionReply(ite)
	case errors.Is(err, conversation.ErrMissingSelector):
		return missingSelectorReply(action)
	case errors.As(err, &ase):
		return ambiguousReply(ase)
	case errors.As(err, &ue):
		return "I don't know how to do that yet."
	case errors.As(err, &ve):
		return "I didn't catch that: " + ve.Error() + "."
	case errors.As(err, &ae):
		return "I couldn't understand the details of that request. Please try again."
	case errors.Is(err, session.ErrClosed):
		return "This conversation has ended. Start a new one to keep exploring."
	case errors.As(err, &uge):
		return fmt.Sprintf("I don't recognize '%s'. Try genres like: %s.", uge.Name, strings.Join(uge.Available, ", "))
	case errors.Is(err, ErrNoVideos):
		return "Unfortunately, no trailer is available for this movie."
	case errors.Is(err, ErrNoSimilar):
		return "I couldn't find any similar titles for that one."
	case errors.Is(err, ErrNotAShow):
		return "Seasons are only available for TV shows."
	case errors.Is(err, ErrNoSeason):
		return "That season doesn't exist for this show."
	case errors.Is(err, ErrNoListings):
		return "There's nothing to show for that right now. Try something else."
	case errors.As(err, &ge):
		if ge.Reason == gateway.ReasonTimeout {
			return "The movie database is taking too long to answer. Please try again."
		}
		return fmt.Sprintf("I couldn't fetch %s right now. Please try again.", fetchNoun(action))
	case errors.Is(err, models.ErrNotFound):
		return notFoundReply(action, subject)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "That took too long. Please try again."
	default:
		return "Something went wrong on my end. Please try again."
	}
}

func invalidTransitionReply(e *conversation.InvalidTransitionError) string {
	what := spoken[e.Action]
	if what == "" {
		what = "do that"
	}
	options := make([]string, 0, len(e.Allowed))
	for _, a := range e.Allowed {
		options = append(options, spoken[a])
	}
	return fmt.Sprintf("I can't %s right now. From here you can %s.", what, joinOr(options))
}

func missingSelectorReply(action conversation.Action) string {
	switch action {
	case conversation.ActionGetTVDetails:
		return "Please specify which show you'd like details about."
	case conversation.ActionSearchPerson:
		return "Please tell me who you'd like to look up."
	case conversation.ActionGetMovieDetails:
		return "Please specify which movie you'd like details about."
	default:
		return "Which title do you mean? Open one from the list first."
	}
}

func ambiguousReply(e *conversation.AmbiguousSelectorError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found several titles matching '%s':\n", e.Title)
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, "%d. %s\n", c.Position, c.Label())
	}
	b.WriteString("Which one did you mean?")
	return b.String()
}

func notFoundReply(action conversation.Action, subject string) string {
	switch action {
	case conversation.ActionSearchMovie:
		return fmt.Sprintf("I couldn't find any movies matching '%s'. Try searching with a different title or let me show you trending movies.", subject)
	case conversation.ActionSearchTV:
		return fmt.Sprintf("I couldn't find any TV shows matching '%s'. Try searching with a different title or let me show you trending movies.", subject)
	case conversation.ActionSearchPerson:
		if subject == "" {
			return "I couldn't find that person. Try searching for them by name."
		}
		return fmt.Sprintf("I couldn't find anyone matching '%s'.", subject)
	case conversation.ActionGetMovieDetails, conversation.ActionGetTVDetails:
		return "I couldn't find that title. Try another number from the list or search again."
	case conversation.ActionGetTrending, conversation.ActionGetMoviesByGenre:
		return "I couldn't find any movies to show right now."
	case conversation.ActionGetSeasonDetails:
		return "I couldn't find that season."
	default:
		return "I couldn't find that title."
	}
}

func fetchNoun(action conversation.Action) string {
	switch action {
	case conversation.ActionSearchMovie, conversation.ActionSearchTV,
		conversation.ActionGetTrending, conversation.ActionGetMoviesByGenre:
		return "the results"
	case conversation.ActionSearchPerson:
		return "that person's details"
	case conversation.ActionGetWatchProviders:
		return "streaming information"
	default:
		return "those details"
	}
}

// joinOr joins phrases as "a, b or c".
func joinOr(parts []string) string {
	switch len(parts) {
	case 0:
		return "start a new search"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

func numbered(b *strings.Builder, items []models.Summary) {
	for i, s := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, s.Label())
	}
}

func searchReply(kind models.MediaKind, l *gateway.Listing, results []models.Summary) string {
	noun, one := "movies", "movie"
	if kind == models.KindTV {
		noun, one = "TV shows", "show"
	}

	var b strings.Builder
	if l.YearMismatch {
		fmt.Fprintf(&b, "I couldn't find '%s' from %d, but here's what I found from other years.\n", l.Query, l.Year)
	}
	fmt.Fprintf(&b, "I found %d %s matching '%s'", len(results), noun, l.Query)
	if l.Year > 0 && !l.YearMismatch {
		fmt.Fprintf(&b, " from %d", l.Year)
	}
	b.WriteString(". Here are the results:\n")
	numbered(&b, results)
	fmt.Fprintf(&b, "Which %s would you like to know more about?", one)
	return b.String()
}

func peopleReply(query string, people []models.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found several people matching '%s':\n", query)
	numbered(&b, people)
	b.WriteString("Which person would you like to know more about?")
	return b.String()
}

func personReply(p *models.PersonItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's %s", p.Name)
	if p.Department != "" {
		fmt.Fprintf(&b, ", known for %s", strings.ToLower(p.Department))
	}
	b.WriteString(". ")
	n := len(p.Filmography)
	if n == 0 {
		b.WriteString("I don't have any titles listed for them.")
		return b.String()
	}
	fmt.Fprintf(&b, "They've appeared in %d titles! Recent ones include: ", n)
	recent := make([]string, 0, 3)
	for _, s := range truncate(p.Filmography, 3) {
		recent = append(recent, s.Title)
	}
	b.WriteString(strings.Join(recent, ", "))
	fmt.Fprintf(&b, ". I'm showing all %d on your screen.", n)
	return b.String()
}

func trendingReply(window string, results []models.Summary) string {
	period := "this week's"
	if window == gateway.WindowDay {
		period = "today's"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here are %s trending movies:\n", period)
	numbered(&b, results)
	b.WriteString("They're all displayed on your screen. Which one interests you?")
	return b.String()
}

func genreReply(genre string, results []models.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are popular %s movies:\n", genre)
	numbered(&b, results)
	b.WriteString("Which movie would you like to explore?")
	return b.String()
}

func detailsReply(item *models.CatalogItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's %s", item.Title)
	if item.Year > 0 {
		fmt.Fprintf(&b, " from %d", item.Year)
	}
	b.WriteString(". ")
	if item.Tagline != "" {
		fmt.Fprintf(&b, "\"%s\". ", item.Tagline)
	}

	genre := "a"
	if len(item.Genres) > 0 {
		genre = article(item.Genres[0]) + " " + strings.ToLower(item.Genres[0])
	}
	if item.Kind == models.KindTV {
		fmt.Fprintf(&b, "It's %s show", genre)
		if item.Seasons > 0 {
			fmt.Fprintf(&b, " with %s and %d episodes", plural(item.Seasons, "season"), item.Episodes)
		}
		b.WriteString(". ")
	} else {
		fmt.Fprintf(&b, "It's %s film", genre)
		if item.Runtime > 0 {
			fmt.Fprintf(&b, " that runs %s", duration(item.Runtime))
		}
		b.WriteString(". ")
	}
	if item.Rating > 0 {
		fmt.Fprintf(&b, "It has a rating of %.1f out of 10. ", item.Rating)
	}
	if item.Overview != "" {
		fmt.Fprintf(&b, "Here's what it's about: %s ", clip(item.Overview, overviewLimit))
	}
	if item.Kind == models.KindTV {
		b.WriteString("Would you like to see the cast, a season, or similar shows?")
	} else {
		b.WriteString("Would you like to see the cast, watch the trailer, or find similar movies?")
	}
	return b.String()
}

func castReply(item *models.CatalogItem) string {
	var b strings.Builder
	if len(item.Cast) == 0 {
		fmt.Fprintf(&b, "I don't have cast information for %s.", item.Title)
	} else {
		names := make([]string, 0, 5)
		for _, c := range truncate(item.Cast, 5) {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&b, "The main cast includes %s.", strings.Join(names, ", "))
	}
	if d, ok := item.Director(); ok {
		fmt.Fprintf(&b, " The film was directed by %s.", d.Name)
	} else if len(item.CreatedBy) > 0 {
		fmt.Fprintf(&b, " The show was created by %s.", strings.Join(item.CreatedBy, ", "))
	}
	b.WriteString(" You can see the full cast on your screen.")
	return b.String()
}

func seasonReply(show *models.CatalogItem, s *models.Season) string {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Season %d", s.Number)
	}
	msg := fmt.Sprintf("Here's %s of %s, with %s.", name, show.Title, plural(len(s.Episodes), "episode"))
	if s.AirDate != "" {
		msg += fmt.Sprintf(" It first aired on %s.", s.AirDate)
	}
	return msg
}

func similarReply(item *models.CatalogItem, similar []models.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on %s, you might enjoy:\n", item.Title)
	numbered(&b, similar)
	b.WriteString("Would you like to hear more about any of these?")
	return b.String()
}

func providersReply(item *models.CatalogItem, p *models.ProviderList, country string) string {
	if p != nil && p.Country != "" {
		country = p.Country
	}
	if p.Empty() {
		return fmt.Sprintf("%s isn't available to stream, rent, or buy in %s right now.", item.Title, country)
	}
	return fmt.Sprintf("You can watch %s on %s. The options are on your screen.", item.Title, joinAnd(p.Names()))
}

func videoReply(item *models.CatalogItem, v models.Video) string {
	if v.IsTrailer() {
		return fmt.Sprintf("I found the trailer for %s. It's now playing on your screen.", item.Title)
	}
	return fmt.Sprintf("There's no official trailer for %s, but I found a %s. It's now playing on your screen.", item.Title, strings.ToLower(v.Type))
}

func watchlistReply(item *models.CatalogItem, added bool, count int) string {
	if !added {
		return "This title is already in your watchlist."
	}
	return fmt.Sprintf("I've added '%s' to your watchlist. You now have %s saved.", item.Title, plural(count, "title"))
}

const clearReply = "I've cleared the display. What would you like to search for next?"

func backReply(tag conversation.StateTag) string {
	switch tag {
	case conversation.ViewingItem:
		return "Here's the title you were looking at."
	case conversation.ViewingPerson:
		return "Here's the person you were looking at."
	default:
		return "Here are the results you were browsing."
	}
}

func joinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func article(word string) string {
	if word != "" && strings.ContainsRune("AEIOUaeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

func duration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return plural(m, "minute")
	case m == 0:
		return plural(h, "hour")
	}
	return plural(h, "hour") + " and " + plural(m, "minute")
}

// clip shortens s to at most n bytes on a word boundary.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
