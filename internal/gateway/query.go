// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package gateway

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/cinebot/internal/models"
)

var queryYear = regexp.MustCompile(`(?i)\b(?:(?:from|in)\s+)?(\d{4})\b`)

// SplitYear separates a year from a spoken title, so "pretty woman from 1990"
// becomes ("pretty woman", 1990). When several four-digit numbers appear the
// last one is the year. A query that is only a year is a title ("1917") and
// is returned unchanged.
func SplitYear(query string) (string, int) {
	query = normalizeSpace(query)
	all := queryYear.FindAllStringSubmatchIndex(query, -1)
	if len(all) == 0 {
		return query, 0
	}
	loc := all[len(all)-1]
	title := normalizeSpace(query[:loc[0]] + " " + query[loc[1]:])
	if title == "" {
		return query, 0
	}
	year, err := strconv.Atoi(query[loc[2]:loc[3]])
	if err != nil {
		return query, 0
	}
	return title, year
}

// normalizeQuery is the form of a query used in cache keys.
func normalizeQuery(q string) string {
	return strings.ToLower(normalizeSpace(q))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// filterYear keeps the summaries released in year. It reports false, and
// returns the input unchanged, when nothing matches.
func filterYear(in []models.Summary, year int) ([]models.Summary, bool) {
	if year == 0 {
		return in, true
	}
	var out []models.Summary
	for _, s := range in {
		if s.Year == year {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return in, false
	}
	return out, true
}

// genreAliases maps spoken genre names onto catalog genre names.
var genreAliases = map[string]string{
	"sci-fi":          "science fiction",
	"sci fi":          "science fiction",
	"scifi":           "science fiction",
	"science-fiction": "science fiction",
	"animated":        "animation",
	"cartoon":         "animation",
	"cartoons":        "animation",
	"romantic":        "romance",
	"rom-com":         "romance",
	"scary":           "horror",
	"funny":           "comedy",
	"comedies":        "comedy",
	"documentaries":   "documentary",
	"doc":             "documentary",
	"thrillers":       "thriller",
	"westerns":        "western",
	"musical":         "music",
	"tv":              "tv movie",
}

// matchGenre finds name among genres, case-insensitively and through aliases.
func matchGenre(genres []models.Genre, name string) (models.Genre, bool) {
	key := normalizeQuery(name)
	if alias, ok := genreAliases[key]; ok {
		key = alias
	}
	for _, g := range genres {
		if strings.ToLower(g.Name) == key {
			return g, true
		}
	}
	return models.Genre{}, false
}

// genreNames lists the first n genre names, lower-cased as they are spoken.
func genreNames(genres []models.Genre, n int) []string {
	if n > len(genres) {
		n = len(genres)
	}
	out := make([]string, 0, n)
	for _, g := range genres[:n] {
		out = append(out, strings.ToLower(g.Name))
	}
	return out
}
