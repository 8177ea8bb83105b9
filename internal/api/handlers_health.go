// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"net/http"
	"time"
)

// breakerOpen is the breaker state in which upstream calls are refused.
const breakerOpen = "open"

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status          string  `json:"status"`
	Version         string  `json:"version,omitempty"`
	Uptime          float64 `json:"uptime_seconds"`
	Sessions        int     `json:"sessions"`
	StreamClients   int     `json:"stream_clients"`
	UpstreamCircuit string  `json:"upstream_circuit,omitempty"`
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// The service is not ready while the upstream catalog circuit is open.
//
// @Summary Kubernetes readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Failure 503 {object} APIResponse{data=HealthStatus}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	state := h.catalog.BreakerState()
	status := HealthStatus{
		Status:          "ready",
		Version:         h.version,
		Uptime:          time.Since(h.startTime).Seconds(),
		Sessions:        h.sessions.Len(),
		StreamClients:   h.wsHub.GetClientCount(),
		UpstreamCircuit: state,
	}
	if state == breakerOpen {
		status.Status = "not_ready"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Movie catalog circuit is open", status)
		return
	}
	rw.Success(status)
}
