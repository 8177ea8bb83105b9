// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package middleware provides HTTP middleware for the Cinebot API.

Every middleware has the chi signature func(http.Handler) http.Handler and is
mounted with Router.Use.

Key Components:

  - RequestID: UUID request ids, mirrored into the logging context
  - SessionContext: tags log lines with the {id} session parameter
  - PrometheusMetrics: request counts and latency labeled by route pattern
  - PerformanceMonitor: rolling per-route latency percentiles
  - Compression: gzip for clients that accept it

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.Compression)

Route Labels:

Metrics and the performance monitor label requests by the chi route pattern
("/api/v1/sessions/{id}/actions/{action}"), never by the raw path. Requests
no route matched are labeled "unmatched".

Websocket Upgrades:

The status-capturing writer implements http.Hijacker, and Compression skips
requests carrying "Upgrade: websocket", so the event stream endpoint can sit
behind the full stack.

See Also:

  - internal/api: router and handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
