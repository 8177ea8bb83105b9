// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinebot/internal/api"
	"github.com/tomtom215/cinebot/internal/cache"
	"github.com/tomtom215/cinebot/internal/config"
	"github.com/tomtom215/cinebot/internal/dispatch"
	"github.com/tomtom215/cinebot/internal/gateway"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/metrics"
	"github.com/tomtom215/cinebot/internal/session"
	"github.com/tomtom215/cinebot/internal/supervisor"
	"github.com/tomtom215/cinebot/internal/supervisor/services"
	"github.com/tomtom215/cinebot/internal/tmdb"
	"github.com/tomtom215/cinebot/internal/watchlist"
	ws "github.com/tomtom215/cinebot/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// gcInterval is how often Badger value logs are collected.
const gcInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("watchlist_store", cfg.Watchlist.Store).
		Bool("persistent_cache", cfg.Cache.PersistentPath != "").
		Msg("Starting Cinebot with supervisor tree")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit display origins in production")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Catalog: TMDB client behind the cached, circuit-broken gateway.
	responses := cache.New(cache.Config{
		Name:       "gateway",
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
	})
	defer responses.Close()

	var persistent *cache.Persistent
	if cfg.Cache.PersistentPath != "" {
		persistent, err = cache.OpenPersistent(cfg.Cache.PersistentPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Cache.PersistentPath).Msg("Failed to open persistent cache")
		}
		defer closeWith("persistent cache", persistent.Close)
		tree.AddStorageService(services.NewValueLogGCService("response-cache", persistent, gcInterval))
	}

	catalog := gateway.New(tmdb.NewClient(&cfg.TMDB), responses, gateway.Options{
		TTL:        cfg.Cache.TTL,
		GenreTTL:   cfg.Cache.GenreTTL,
		Timeout:    cfg.TMDB.Timeout,
		Country:    cfg.Dispatch.ProviderCountry,
		Persistent: persistent,
	})

	store, err := watchlist.Open(cfg.Watchlist.Store, cfg.Watchlist.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("store", cfg.Watchlist.Store).Msg("Failed to open watchlist store")
	}
	defer closeWith("watchlist store", store.Close)
	if collector, ok := store.(services.Collector); ok {
		tree.AddStorageService(services.NewValueLogGCService("watchlist", collector, gcInterval))
	}

	// Conversation: sessions stream their view events through the hub.
	hub := ws.NewHub()
	sessions := session.NewManager(session.Config{
		IdleTimeout:     cfg.Session.IdleTimeout,
		ReapInterval:    cfg.Session.ReapInterval,
		EndOnDisconnect: cfg.Session.EndOnDisconnect,
	}, hub.SessionEmitter)
	sessions.OnEnd(hub.CloseSession)
	hub.OnSessionEmpty(sessions.ClientsGone)

	dispatcher := dispatch.New(catalog, store, dispatch.ConfigFrom(cfg.Dispatch))

	handler := api.NewHandler(sessions, dispatcher, catalog, store, hub, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Event streams are long-lived; the websocket client sets its own
		// write deadlines.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	tree.AddConversationService(hub)
	tree.AddConversationService(sessions)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
		cancel()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Cinebot stopped gracefully")
}

func closeWith(what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logging.Error().Err(err).Str("resource", what).Msg("Close failed")
	}
}
