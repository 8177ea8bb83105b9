// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/session"
	"github.com/tomtom215/cinebot/internal/validation"
	ws "github.com/tomtom215/cinebot/internal/websocket"
)

// lookupSession resolves the {id} URL parameter, writing a 404 when the
// session does not exist.
func (h *Handler) lookupSession(rw *ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		rw.NotFound("Session not found or already ended")
		return nil, false
	}
	return s, true
}

// CreateSession starts a conversation.
//
// @Summary Create a conversation session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param body body CreateSessionRequest false "Optional owner"
// @Success 201 {object} APIResponse{data=SessionResponse}
// @Failure 400 {object} APIResponse
// @Router /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	body, err := readBody(w, r, maxActionBody)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req, err := decodeCreateSession(body)
	if err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			apiErr := verr.ToAPIError()
			rw.ValidationError(apiErr.Code, apiErr.Message, apiErr.Details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	s := h.sessions.Create(req.Owner)
	rw.Created(h.sessionResponse(s))
}

// GetSession returns the session's state snapshot.
//
// @Summary Get a session's conversation state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse{data=SessionResponse}
// @Failure 404 {object} APIResponse
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s, ok := h.lookupSession(rw, r)
	if !ok {
		return
	}
	rw.Success(h.sessionResponse(s))
}

// EndSession ends a session and disconnects its event streams.
//
// @Summary End a session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /sessions/{id} [delete]
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.sessions.End(chi.URLParam(r, "id"), session.ReasonDeleted); err != nil {
		rw.NotFound("Session not found or already ended")
		return
	}
	rw.NoContent()
}

// InvokeAction runs one action on the session. The body is a JSON object of
// named arguments; it may be empty for actions that take none.
//
// @Summary Invoke a conversation action
// @Description Runs the action, emits its view events on the session stream, and returns the spoken reply. On failure error.message is the spoken reply and error.code the taxonomy code.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param action path string true "Action name, see GET /actions"
// @Success 200 {object} APIResponse{data=dispatch.Result}
// @Failure 400,404,409,410,422,502,504 {object} APIResponse
// @Router /sessions/{id}/actions/{action} [post]
func (h *Handler) InvokeAction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s, ok := h.lookupSession(rw, r)
	if !ok {
		return
	}

	body, err := readBody(w, r, maxActionBody)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), s, chi.URLParam(r, "action"), body)
	if err != nil {
		rw.TurnError(err)
		return
	}
	rw.Success(res)
}

// SessionEvents upgrades to a websocket streaming the session's view events.
//
// @Summary Stream a session's view events
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 404 {object} APIResponse
// @Router /sessions/{id}/events [get]
func (h *Handler) SessionEvents(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.wsHub == nil {
		rw.ServiceUnavailable("Event stream unavailable")
		return
	}
	s, ok := h.lookupSession(rw, r)
	if !ok {
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	s.Touch()
	client := ws.NewClient(h.wsHub, conn, s.ID())
	h.wsHub.Register <- client
	client.Start()
}

// Watchlist returns the session owner's watchlist.
//
// @Summary Get the session owner's watchlist
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse{data=WatchlistResponse}
// @Failure 404 {object} APIResponse
// @Router /sessions/{id}/watchlist [get]
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s, ok := h.lookupSession(rw, r)
	if !ok {
		return
	}

	items, err := h.watchlist.List(r.Context(), s.Owner())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to list watchlist")
		rw.InternalError("Failed to load the watchlist")
		return
	}
	rw.SuccessList(WatchlistResponse{Owner: s.Owner(), Items: items}, len(items))
}
