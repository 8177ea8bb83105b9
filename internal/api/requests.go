// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinebot/internal/conversation"
	"github.com/tomtom215/cinebot/internal/models"
	"github.com/tomtom215/cinebot/internal/session"
	"github.com/tomtom215/cinebot/internal/validation"
)

// errBodyTooLarge is returned for request bodies over the limit.
var errBodyTooLarge = errors.New("request body too large")

// CreateSessionRequest is the optional body of POST /sessions.
// An empty owner gives the session a private watchlist.
type CreateSessionRequest struct {
	Owner string `json:"owner" validate:"omitempty,notblank,max=128"`
}

// SessionResponse describes a live session.
type SessionResponse struct {
	ID        string                `json:"id"`
	Owner     string                `json:"owner"`
	CreatedAt time.Time             `json:"created_at"`
	EventsURL string                `json:"events_url"`
	Clients   int                   `json:"clients"`
	State     conversation.Snapshot `json:"state"`
}

// WatchlistResponse is the body of GET /sessions/{id}/watchlist.
type WatchlistResponse struct {
	Owner string                 `json:"owner"`
	Items []models.WatchlistItem `json:"items"`
}

// MenuResponse is the body of GET /menu.
type MenuResponse struct {
	Genres []models.Genre `json:"genres"`
}

// readBody reads at most limit bytes of r's body.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// decodeCreateSession parses and validates an optional create body.
func decodeCreateSession(body []byte) (CreateSessionRequest, error) {
	var req CreateSessionRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

func (h *Handler) sessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID(),
		Owner:     s.Owner(),
		CreatedAt: s.CreatedAt(),
		EventsURL: "/api/v1/sessions/" + s.ID() + "/events",
		Clients:   h.wsHub.SessionClientCount(s.ID()),
		State:     s.Snapshot(),
	}
}
