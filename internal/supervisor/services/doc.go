// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package services adapts components that do not already implement
suture.Service.

HTTPServerService turns the ListenAndServe/Shutdown pair of *http.Server into
a context-driven Serve with a bounded drain.

ValueLogGCService periodically reclaims Badger value-log space for the
persistent response cache and the Badger watchlist store.

The websocket hub and the session manager implement Serve and String
themselves and need no wrapper.
*/
package services
