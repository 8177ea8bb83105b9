// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package supervisor runs Cinebot's long-lived services under a suture v4 tree.

# Overview

	RootSupervisor ("cinebot")
	├── StorageSupervisor ("storage-layer")
	│   └── ValueLogGCService (per Badger database, when configured)
	├── ConversationSupervisor ("conversation-layer")
	│   ├── websocket.Hub ("websocket-hub")
	│   └── session.Manager ("session-reaper")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The hub and the session manager implement suture.Service themselves and are
added directly. Supervisor events are logged through sutureslog, bridged to
zerolog by logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddConversationService(hub)
	tree.AddConversationService(sessions)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Failure Handling

Each layer keeps its own failure counter, decayed over FailureDecay seconds.
Past FailureThreshold the layer waits FailureBackoff before restarting the
service. A service that returns nil is not restarted.

If services outlive ShutdownTimeout, UnstoppedServiceReport names them.
*/
package supervisor
