// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinebot/internal/events"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path (e.g., SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Control message types. View events use their events.Type as the message type.
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// routeBuffer bounds the hub's routing channel.
const routeBuffer = 256

// Message is the websocket frame: {"type": ..., "data": ...}.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// envelope is a batch of messages addressed to one session's clients. A
// batch is routed and delivered whole or not at all.
type envelope struct {
	session string
	msgs    []Message
}

// Hub routes each session's view events to the clients watching that session.
// Messages for one session are delivered in the order they were sent.
type Hub struct {
	sessions   map[string]map[*Client]bool
	route      chan envelope
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// done is closed when the hub stops so that exiting clients do not
	// block on Unregister.
	done     chan struct{}
	stopOnce sync.Once

	// onEmpty is called, outside the lock, when a session's last client leaves.
	onEmpty func(sessionID string)
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		route:      make(chan envelope, routeBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// OnSessionEmpty sets the callback run when the last client of a session
// disconnects. It must be set before the hub runs.
func (h *Hub) OnSessionEmpty(fn func(sessionID string)) {
	h.onEmpty = fn
}

// RunWithContext runs the hub until ctx is canceled, then closes every client.
//
// Selection is priority ordered: shutdown first, then client lifecycle, then
// routed messages. A client registered before a message is routed always
// receives it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case env := <-h.route:
			h.deliver(env)
		}
	}
}

// Serve implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

func (h *Hub) String() string {
	return "websocket-hub"
}

// leave unregisters client unless the hub has stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	set, ok := h.sessions[client.session]
	if !ok {
		set = make(map[*Client]bool)
		h.sessions[client.session] = set
	}
	set[client] = true
	n := len(set)
	h.mu.Unlock()
	metrics.WSConnections.Inc()

	logging.Info().
		Str("session_id", client.session).
		Int("session_clients", n).
		Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	set, ok := h.sessions[client.session]
	if !ok || !set[client] {
		h.mu.Unlock()
		return
	}
	delete(set, client)
	close(client.send)
	empty := len(set) == 0
	if empty {
		delete(h.sessions, client.session)
	}
	h.mu.Unlock()
	metrics.WSConnections.Dec()

	logging.Info().Str("session_id", client.session).Msg("websocket client disconnected")
	if empty && h.onEmpty != nil {
		h.onEmpty(client.session)
	}
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// sorted returns set's clients in id order.
func sorted(set map[*Client]bool) []*Client {
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// deliver sends a batch to the session's clients in id order. A client
// without room for the whole batch is dropped. Only the hub goroutine writes
// to client.send, so free space cannot shrink between the check and the sends.
func (h *Hub) deliver(env envelope) {
	h.mu.Lock()
	set := h.sessions[env.session]
	var toRemove []*Client
	for _, client := range sorted(set) {
		if cap(client.send)-len(client.send) < len(env.msgs) {
			toRemove = append(toRemove, client)
			continue
		}
		for _, msg := range env.msgs {
			client.send <- msg
			metrics.WSMessagesSent.Inc()
		}
	}
	for _, client := range toRemove {
		close(client.send)
		delete(set, client)
		metrics.WSConnections.Dec()
		metrics.WSMessagesDropped.WithLabelValues("slow_client").Inc()
	}
	empty := len(toRemove) > 0 && len(set) == 0
	if empty {
		delete(h.sessions, env.session)
	}
	h.mu.Unlock()

	if len(toRemove) > 0 {
		logging.Warn().Str("session_id", env.session).Int("dropped", len(toRemove)).Msg("dropped slow websocket clients")
	}
	if empty && h.onEmpty != nil {
		h.onEmpty(env.session)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, client := range sorted(h.sessions[id]) {
			close(client.send)
			metrics.WSConnections.Dec()
		}
		delete(h.sessions, id)
	}
}

// CloseSession disconnects every client of a session. It is used when the
// session ends and does not trigger the empty-session callback.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	set := h.sessions[sessionID]
	for _, client := range sorted(set) {
		close(client.send)
		metrics.WSConnections.Dec()
	}
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	if len(set) > 0 {
		logging.Info().Str("session_id", sessionID).Int("clients_closed", len(set)).Msg("closed websocket clients of ended session")
	}
}

// Send queues msgs as one batch for the clients of a session. The whole
// batch is dropped with a warning when the routing channel is full.
func (h *Hub) Send(sessionID string, msgs ...Message) {
	if len(msgs) == 0 {
		return
	}
	select {
	case h.route <- envelope{session: sessionID, msgs: msgs}:
	default:
		metrics.WSMessagesDropped.WithLabelValues("route_full").Add(float64(len(msgs)))
		logging.Warn().
			Str("session_id", sessionID).
			Str("message_type", msgs[len(msgs)-1].Type).
			Int("messages", len(msgs)).
			Msg("route channel full, dropping batch")
	}
}

// SessionEmitter returns an events.Emitter that routes a session's view
// events through the hub. The emitter also implements events.BatchEmitter.
func (h *Hub) SessionEmitter(sessionID string) events.Emitter {
	return sessionEmitter{hub: h, session: sessionID}
}

type sessionEmitter struct {
	hub     *Hub
	session string
}

func (e sessionEmitter) Emit(ev events.Event) {
	e.hub.Send(e.session, toMessage(ev))
}

func (e sessionEmitter) EmitBatch(evs []events.Event) {
	msgs := make([]Message, len(evs))
	for i, ev := range evs {
		msgs[i] = toMessage(ev)
	}
	e.hub.Send(e.session, msgs...)
}

func toMessage(e events.Event) Message {
	return Message{Type: string(e.Type), Data: e.Data}
}

// GetClientCount returns the number of connected clients across all sessions.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.sessions {
		n += len(set)
	}
	return n
}

// SessionClientCount returns the number of clients watching a session.
func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
