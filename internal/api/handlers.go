// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinebot/internal/dispatch"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/middleware"
	"github.com/tomtom215/cinebot/internal/models"
	"github.com/tomtom215/cinebot/internal/session"
	"github.com/tomtom215/cinebot/internal/watchlist"
	ws "github.com/tomtom215/cinebot/internal/websocket"
)

// maxActionBody bounds the JSON argument body of one action.
const maxActionBody = 64 * 1024

// Catalog is the part of the metadata gateway the handlers read directly.
// *gateway.Gateway satisfies it.
type Catalog interface {
	FetchGenres(ctx context.Context) ([]models.Genre, error)
	BreakerState() string
}

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	sessions   *session.Manager
	dispatcher *dispatch.Dispatcher
	catalog    Catalog
	watchlist  watchlist.Store
	wsHub      *ws.Hub
	perfMon    *middleware.PerformanceMonitor
	origins    *ChiMiddleware
	version    string
	startTime  time.Time
}

// NewHandler creates the handler set.
func NewHandler(sessions *session.Manager, dispatcher *dispatch.Dispatcher, catalog Catalog, store watchlist.Store, hub *ws.Hub, version string) *Handler {
	return &Handler{
		sessions:   sessions,
		dispatcher: dispatcher,
		catalog:    catalog,
		watchlist:  store,
		wsHub:      hub,
		perfMon:    middleware.NewPerformanceMonitor(1000, 2*time.Second),
		origins:    NewChiMiddleware(nil),
		version:    version,
		startTime:  time.Now(),
	}
}

func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// CORS allow list. Browsers always send Origin, so a missing one is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	if h.origins.AllowsOrigin(origin) {
		return true
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// sanitizeLogValue strips control characters and bounds the length of
// client-supplied values before they are logged.
func sanitizeLogValue(s string) string {
	const maxLen = 200
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
