// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package config loads Cinebot configuration.

Configuration is layered with Koanf v2, lowest priority first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else config.yaml or config.yml
 3. Environment variables mapped through envTransformFunc

Only environment variables listed in the mapping table are read. Anything
else in the environment is ignored.

Example config.yaml:

	tmdb:
	  api_key: "..."
	  region: "GB"
	cache:
	  ttl: 1h
	  persistent_path: /data/cache
	dispatch:
	  auto_select_single: true
	  provider_country: "GB"
	watchlist:
	  store: badger
	  path: /data/watchlist
*/
package config

import "time"

// Config is the root configuration.
type Config struct {
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Cache     CacheConfig     `koanf:"cache"`
	Dispatch  DispatchConfig  `koanf:"dispatch"`
	Session   SessionConfig   `koanf:"session"`
	Watchlist WatchlistConfig `koanf:"watchlist"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TMDBConfig holds catalog upstream settings.
//
// Environment Variables:
//   - TMDB_API_KEY: v3 API key
//   - TMDB_READ_TOKEN: v4 read access token (preferred when both are set)
//   - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL
//   - TMDB_LANGUAGE (default: en-US), TMDB_REGION (default: US)
//   - TMDB_TIMEOUT (default: 10s)
//   - TMDB_REQUESTS_PER_SECOND (default: 20), TMDB_BURST (default: 10)
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	ReadToken         string        `koanf:"read_token"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Language          string        `koanf:"language"`
	Region            string        `koanf:"region"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// CacheConfig controls the shared gateway cache.
type CacheConfig struct {
	// TTL applies to every cached lookup except the genre list.
	TTL time.Duration `koanf:"ttl"`

	// GenreTTL applies to the genre list, which changes rarely.
	GenreTTL time.Duration `koanf:"genre_ttl"`

	// MaxEntries bounds the in-memory tier. 0 means unbounded.
	MaxEntries int `koanf:"max_entries"`

	// PersistentPath enables a Badger-backed second tier. Empty disables it.
	PersistentPath string `koanf:"persistent_path"`
}

// DispatchConfig shapes conversational behavior.
type DispatchConfig struct {
	AutoSelectSingle  bool   `koanf:"auto_select_single"`
	ClearOnViewChange bool   `koanf:"clear_on_view_change"`
	MaxResults        int    `koanf:"max_results"`
	MaxPeople         int    `koanf:"max_people"`
	HistoryDepth      int    `koanf:"history_depth"`
	ProviderCountry   string `koanf:"provider_country"`
}

// SessionConfig controls conversation session lifetime.
type SessionConfig struct {
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ReapInterval    time.Duration `koanf:"reap_interval"`
	EndOnDisconnect bool          `koanf:"end_on_disconnect"`
}

// WatchlistConfig selects the watchlist backend: "memory" or "badger".
type WatchlistConfig struct {
	Store string `koanf:"store"`
	Path  string `koanf:"path"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds CORS and rate-limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config for the loader.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load is the entry point used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
