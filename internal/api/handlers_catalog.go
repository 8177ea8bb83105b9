// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"net/http"

	"github.com/tomtom215/cinebot/internal/dispatch"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/models"
)

// Actions lists every action with its parameters, for wiring into the
// language layer as tool definitions.
//
// @Summary List conversation actions
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=[]dispatch.ActionInfo}
// @Router /actions [get]
func (h *Handler) Actions(w http.ResponseWriter, r *http.Request) {
	actions := dispatch.Actions()
	NewResponseWriter(w, r).SuccessList(actions, len(actions))
}

// Menu returns the genre menu. A catalog failure degrades to an empty menu.
//
// @Summary Genre menu
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=MenuResponse}
// @Router /menu [get]
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.FetchGenres(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Genre menu unavailable")
		genres = []models.Genre{}
	}
	NewResponseWriter(w, r).SuccessList(MenuResponse{Genres: genres}, len(genres))
}

// EndpointStats returns rolling per-route latency statistics.
//
// @Summary Per-route latency statistics
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=[]middleware.EndpointStats}
// @Router /stats/endpoints [get]
func (h *Handler) EndpointStats(w http.ResponseWriter, r *http.Request) {
	stats := h.perfMon.GetStats()
	NewResponseWriter(w, r).SuccessList(stats, len(stats))
}
