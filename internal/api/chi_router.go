// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinebot/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. The websocket origin check follows the same
// allow list as CORS.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	handler.origins = chiMiddleware
	return &Router{handler: handler, chiMiddleware: chiMiddleware}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(h.perfMon.Middleware)
		r.Use(middleware.Compression)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/actions", h.Actions)
			r.Get("/menu", h.Menu)
			r.Get("/stats/endpoints", h.EndpointStats)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitSessions()).Post("/", h.CreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.SessionContext)

				r.With(router.chiMiddleware.RateLimit()).Get("/", h.GetSession)
				r.With(router.chiMiddleware.RateLimitSessions()).Delete("/", h.EndSession)
				r.With(router.chiMiddleware.RateLimitActions()).Post("/actions/{action}", h.InvokeAction)
				r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/events", h.SessionEvents)
				r.With(router.chiMiddleware.RateLimit()).Get("/watchlist", h.Watchlist)
			})
		})
	})

	return r
}
