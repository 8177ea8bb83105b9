// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package models defines the catalog entities shared by the gateway, the
conversation engine and the event payloads pushed to displays.

Titles:

  - Summary: one row of a result list (movie, show or person)
  - CatalogItem: full movie or show details, with credits and videos
  - Ref: a (kind, id) pair naming a catalog entity

People:

  - PersonItem: biography and a deduplicated, newest-first filmography

Availability:

  - ProviderList: streaming, rent and buy offers for one region
  - Genre, Season, Episode

Watchlists store WatchlistItem values keyed by owner.

Example:

	item := models.NewWatchlistItem(details, time.Now())
	if errors.Is(err, models.ErrNotFound) {
	    // reply "I couldn't find that title"
	}
*/
package models
