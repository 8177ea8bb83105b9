// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package websocket streams each conversation session's view events to the
screens watching it.

Key Components:

  - Hub: routes messages to the clients of one session at a time
  - Client: one WebSocket connection with read and write goroutines
  - Message: the {"type": ..., "data": ...} frame

Architecture:

	dispatcher ──EmitAll─> SessionEmitter(id) ──> route chan ──> Hub
	                                                            │
	                                        ┌───────────────────┼──────────────┐
	                                        │ session A          │ session B    │
	                                        │ Client1  Client2   │ Client3      │
	                                        └────────────────────┴──────────────┘

Every view event of a session passes through the single routing channel, so
clients receive a session's events in emission order. The events of one turn
travel as a single batch: they are routed and delivered together or not at
all. A client whose send buffer cannot take a whole batch is dropped rather
than slowing the hub.

The stream is one-way. Clients may send {"type":"ping"} and receive a pong;
anything else they send is ignored.

Connection Lifecycle:

 1. Client connects via HTTP upgrade on /api/v1/sessions/{id}/events
 2. Hub registers the client under its session
 3. Dispatcher turns emit events, which the hub routes to the session's clients
 4. Client disconnects, or the session ends and CloseSession drops its clients
 5. When a session's last client leaves, the OnSessionEmpty callback runs

Configuration:

  - writeWait: 10 seconds (time allowed to write message)
  - pongWait: 60 seconds (time allowed to read pong)
  - pingPeriod: 54 seconds (ping interval, must be < pongWait)
  - maxMessageSize: 64 KB (largest client frame read)
*/
package websocket
