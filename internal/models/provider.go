// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package models

// Offer types reported by the watch-provider endpoint.
const (
	OfferFlatrate = "flatrate"
	OfferRent     = "rent"
	OfferBuy      = "buy"
	OfferFree     = "free"
)

// Provider is a streaming or retail service offering a title.
type Provider struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	LogoURL         string   `json:"logo_url,omitempty"`
	DisplayPriority int      `json:"display_priority"`
	Offers          []string `json:"offers"`
}

// ProviderList is the set of providers for one title in one region.
type ProviderList struct {
	Ref       Ref        `json:"ref"`
	Country   string     `json:"country"`
	Link      string     `json:"link,omitempty"`
	Providers []Provider `json:"providers"`
}

// Empty reports whether no provider offers the title in the region.
func (p *ProviderList) Empty() bool {
	return p == nil || len(p.Providers) == 0
}

// Names returns provider names in display order.
func (p *ProviderList) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Providers))
	for _, pr := range p.Providers {
		names = append(names, pr.Name)
	}
	return names
}

// Genre is a catalog genre with its upstream id.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Episode is one episode within a season.
type Episode struct {
	Number   int     `json:"episode_number"`
	Name     string  `json:"name"`
	Overview string  `json:"overview,omitempty"`
	AirDate  string  `json:"air_date,omitempty"`
	Runtime  int     `json:"runtime,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	StillURL string  `json:"still_url,omitempty"`
}

// Season is the full record of one TV season.
type Season struct {
	ShowID    int       `json:"show_id"`
	Number    int       `json:"season_number"`
	Name      string    `json:"name"`
	Overview  string    `json:"overview,omitempty"`
	AirDate   string    `json:"air_date,omitempty"`
	PosterURL string    `json:"poster_url,omitempty"`
	Episodes  []Episode `json:"episodes"`
}
