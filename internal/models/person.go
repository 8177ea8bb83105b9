// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package models

// PersonItem is the full record of an actor, director, or crew member.
type PersonItem struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Department   string  `json:"department,omitempty"`
	Biography    string  `json:"biography,omitempty"`
	Birthday     string  `json:"birthday,omitempty"`
	Deathday     string  `json:"deathday,omitempty"`
	PlaceOfBirth string  `json:"place_of_birth,omitempty"`
	ProfileURL   string  `json:"profile_url,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`

	// Filmography is ordered newest first and deduplicated by title id.
	Filmography []Summary `json:"filmography"`
}

// Summary returns the listing form of the person.
func (p *PersonItem) Summary() Summary {
	return Summary{
		ID:         p.ID,
		Kind:       KindPerson,
		Title:      p.Name,
		PosterURL:  p.ProfileURL,
		Popularity: p.Popularity,
		Department: p.Department,
	}
}

// Ref returns the stable reference for the person.
func (p *PersonItem) Ref() Ref {
	return Ref{Kind: KindPerson, ID: p.ID}
}
