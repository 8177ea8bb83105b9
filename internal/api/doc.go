// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package api is the HTTP surface of Cinebot: session lifecycle, action
invocation, and the per-session event stream.

Routes (prefix /api/v1):

	POST   /sessions                          create a session
	GET    /sessions/{id}                     state snapshot
	DELETE /sessions/{id}                     end the session
	POST   /sessions/{id}/actions/{action}    run one action
	GET    /sessions/{id}/events              websocket event stream
	GET    /sessions/{id}/watchlist           the owner's watchlist
	GET    /actions                           action catalog for the language layer
	GET    /menu                              genre menu
	GET    /stats/endpoints                   per-route latency
	GET    /health/live, /health/ready        probes

Prometheus metrics are served at /metrics.

Response Format:

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}

A failed action carries the spoken reply in error.message and the error
taxonomy in error.code:

	{"success": false, "error": {"code": "INVALID_TRANSITION", "message": "I can't ..."}}

Turn error codes map to HTTP statuses in turnStatus: INVALID_TRANSITION is
409, selector problems are 422, NOT_FOUND is 404, a closed session is 410,
and upstream failures are 502 or 504.

Middleware:

Global: request id, real IP, panic recovery, CORS. The API group adds security
headers, Prometheus metrics, the performance monitor and gzip. Each route
group has its own httprate limit.
*/
package api
