// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package main is the entry point for the Cinebot server.

Cinebot is the conversation engine behind a voice movie-discovery assistant. A
language layer turns each utterance into one action call (search_movie,
get_movie_details, add_to_watchlist, ...). The server runs the action against
the session's conversation state, fetches what it needs from TMDB, and returns
a spoken reply while the matching view event streams to the session's display
over a websocket.

# Application Architecture

	RootSupervisor ("cinebot")
	├── StorageSupervisor ("storage-layer")
	│   └── Badger value-log GC (persistent cache, badger watchlist)
	├── ConversationSupervisor ("conversation-layer")
	│   ├── WebSocket Hub (per-session event streams)
	│   └── Session Manager (idle reaper)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi)

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Catalog: TMDB client, LRU cache, optional Badger tier, gateway
 4. Watchlist store: memory or Badger
 5. Hub and session manager, wired so ending a session closes its streams
 6. Dispatcher, HTTP handlers and router
 7. Supervisor tree

# Configuration

Selected environment variables:

	TMDB_API_KEY or TMDB_READ_TOKEN   catalog credentials (one is required)
	HTTP_PORT                         listen port (default 3030)
	CORS_ORIGINS                      display origins, comma separated
	WATCHLIST_STORE, WATCHLIST_PATH   "memory" (default) or "badger"
	CACHE_PERSISTENT_PATH             enables the Badger response cache
	SESSION_IDLE_TIMEOUT              idle sessions end after this long
	LOG_LEVEL, LOG_FORMAT             zerolog level and json|console

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains for up to 10s,
live sessions end with reason "shutdown", and Badger stores are closed.

# Example Usage

	export TMDB_API_KEY=...
	export CORS_ORIGINS=http://display.local
	./cinebot
*/
package main
