// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tomtom215/cinebot/internal/logging"
)

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// maxListing caps how many entries a spoken listing may carry.
const maxListing = 20

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateTMDB,
		c.validateCache,
		c.validateDispatch,
		c.validateSession,
		c.validateWatchlist,
		c.validateServer,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" && c.TMDB.ReadToken == "" {
		return fmt.Errorf("TMDB_API_KEY or TMDB_READ_TOKEN is required")
	}
	if err := validateHTTPURL("TMDB_BASE_URL", c.TMDB.BaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("TMDB_IMAGE_BASE_URL", c.TMDB.ImageBaseURL); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RequestsPerSecond < 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must not be negative")
	}
	if len(c.TMDB.Region) != 2 {
		return fmt.Errorf("TMDB_REGION must be an ISO 3166-1 alpha-2 code, got %q", c.TMDB.Region)
	}
	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.GenreTTL <= 0 {
		return fmt.Errorf("CACHE_GENRE_TTL must be positive")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must not be negative")
	}
	return nil
}

func (c *Config) validateDispatch() error {
	if c.Dispatch.MaxResults < 1 || c.Dispatch.MaxResults > maxListing {
		return fmt.Errorf("DISPATCH_MAX_RESULTS must be between 1 and %d", maxListing)
	}
	if c.Dispatch.MaxPeople < 1 || c.Dispatch.MaxPeople > maxListing {
		return fmt.Errorf("DISPATCH_MAX_PEOPLE must be between 1 and %d", maxListing)
	}
	if c.Dispatch.HistoryDepth < 1 || c.Dispatch.HistoryDepth > 100 {
		return fmt.Errorf("DISPATCH_HISTORY_DEPTH must be between 1 and 100")
	}
	if len(c.Dispatch.ProviderCountry) != 2 {
		return fmt.Errorf("PROVIDER_COUNTRY must be an ISO 3166-1 alpha-2 code, got %q", c.Dispatch.ProviderCountry)
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.Session.ReapInterval <= 0 {
		return fmt.Errorf("SESSION_REAP_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateWatchlist() error {
	switch c.Watchlist.Store {
	case "memory":
		return nil
	case "badger":
		if c.Watchlist.Path == "" {
			return fmt.Errorf("WATCHLIST_PATH is required when WATCHLIST_STORE=badger")
		}
		return nil
	default:
		return fmt.Errorf("WATCHLIST_STORE must be one of: memory, badger")
	}
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
