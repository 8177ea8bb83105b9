// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.TMDB.APIKey != "" || cfg.TMDB.ReadToken != "" {
		t.Error("TMDB credentials should be empty by default")
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Timeout != 10*time.Second {
		t.Errorf("TMDB.Timeout = %v, want 10s", cfg.TMDB.Timeout)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Cache.GenreTTL != 168*time.Hour {
		t.Errorf("Cache.GenreTTL = %v, want 168h", cfg.Cache.GenreTTL)
	}
	if !cfg.Dispatch.AutoSelectSingle {
		t.Error("Dispatch.AutoSelectSingle should be true by default")
	}
	if !cfg.Dispatch.ClearOnViewChange {
		t.Error("Dispatch.ClearOnViewChange should be true by default")
	}
	if cfg.Dispatch.MaxResults != 10 {
		t.Errorf("Dispatch.MaxResults = %d, want 10", cfg.Dispatch.MaxResults)
	}
	if cfg.Dispatch.MaxPeople != 5 {
		t.Errorf("Dispatch.MaxPeople = %d, want 5", cfg.Dispatch.MaxPeople)
	}
	if cfg.Dispatch.ProviderCountry != "US" {
		t.Errorf("Dispatch.ProviderCountry = %q, want US", cfg.Dispatch.ProviderCountry)
	}
	if cfg.Session.IdleTimeout != 30*time.Minute {
		t.Errorf("Session.IdleTimeout = %v, want 30m", cfg.Session.IdleTimeout)
	}
	if cfg.Watchlist.Store != "memory" {
		t.Errorf("Watchlist.Store = %q, want memory", cfg.Watchlist.Store)
	}
	if cfg.Server.Port != 3030 {
		t.Errorf("Server.Port = %d, want 3030", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}

	// Defaults alone must fail only because credentials are missing.
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "TMDB_API_KEY") {
		t.Errorf("Validate() on defaults = %v, want missing credential error", err)
	}
	cfg.TMDB.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with key = %v, want nil", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"TMDB_READ_TOKEN", "tmdb.read_token"},
		{"TMDB_REQUESTS_PER_SECOND", "tmdb.requests_per_second"},
		{"CACHE_PERSISTENT_PATH", "cache.persistent_path"},
		{"DISPATCH_AUTO_SELECT_SINGLE", "dispatch.auto_select_single"},
		{"PROVIDER_COUNTRY", "dispatch.provider_country"},
		{"SESSION_IDLE_TIMEOUT", "session.idle_timeout"},
		{"WATCHLIST_STORE", "watchlist.store"},
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
		{"TMDB_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cinebot.yaml")
	if err := os.WriteFile(path, []byte("tmdb:\n  api_key: x\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() with missing file = %q, want empty", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("TMDB_API_KEY", "test_api_key_12345")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DISPATCH_MAX_RESULTS", "5")
	t.Setenv("DISPATCH_AUTO_SELECT_SINGLE", "false")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90s")
	t.Setenv("TMDB_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.TMDB.APIKey != "test_api_key_12345" {
		t.Errorf("TMDB.APIKey = %q", cfg.TMDB.APIKey)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Dispatch.MaxResults != 5 {
		t.Errorf("Dispatch.MaxResults = %d, want 5", cfg.Dispatch.MaxResults)
	}
	if cfg.Dispatch.AutoSelectSingle {
		t.Error("Dispatch.AutoSelectSingle = true, want false")
	}
	if cfg.Session.IdleTimeout != 90*time.Second {
		t.Errorf("Session.IdleTimeout = %v, want 90s", cfg.Session.IdleTimeout)
	}
	if cfg.TMDB.RequestsPerSecond != 2.5 {
		t.Errorf("TMDB.RequestsPerSecond = %v, want 2.5", cfg.TMDB.RequestsPerSecond)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}

	// Unset values keep defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Dispatch.MaxPeople != 5 {
		t.Errorf("Dispatch.MaxPeople = %d, want 5 (default)", cfg.Dispatch.MaxPeople)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
tmdb:
  api_key: from_file
  region: GB
cache:
  ttl: 2h
dispatch:
  max_results: 7
  provider_country: GB
watchlist:
  store: badger
  path: /tmp/watchlist
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("TMDB_API_KEY", "from_env")
	t.Setenv("DISPATCH_MAX_RESULTS", "3")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.TMDB.APIKey != "from_env" {
		t.Errorf("TMDB.APIKey = %q, want from_env", cfg.TMDB.APIKey)
	}
	if cfg.Dispatch.MaxResults != 3 {
		t.Errorf("Dispatch.MaxResults = %d, want 3", cfg.Dispatch.MaxResults)
	}
	if cfg.TMDB.Region != "GB" {
		t.Errorf("TMDB.Region = %q, want GB (file)", cfg.TMDB.Region)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h (file)", cfg.Cache.TTL)
	}
	if cfg.Watchlist.Store != "badger" || cfg.Watchlist.Path != "/tmp/watchlist" {
		t.Errorf("Watchlist = %+v", cfg.Watchlist)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing credentials", map[string]string{}, "TMDB_API_KEY"},
		{"read token only", map[string]string{"TMDB_READ_TOKEN": "tok"}, ""},
		{"bad base url", map[string]string{"TMDB_API_KEY": "k", "TMDB_BASE_URL": "ftp://x"}, "TMDB_BASE_URL"},
		{"max results too high", map[string]string{"TMDB_API_KEY": "k", "DISPATCH_MAX_RESULTS": "50"}, "DISPATCH_MAX_RESULTS"},
		{"bad country", map[string]string{"TMDB_API_KEY": "k", "PROVIDER_COUNTRY": "USA"}, "PROVIDER_COUNTRY"},
		{"unknown store", map[string]string{"TMDB_API_KEY": "k", "WATCHLIST_STORE": "redis"}, "WATCHLIST_STORE"},
		{"badger without path", map[string]string{"TMDB_API_KEY": "k", "WATCHLIST_STORE": "badger", "WATCHLIST_PATH": ""}, "WATCHLIST_PATH"},
		{"bad log level", map[string]string{"TMDB_API_KEY": "k", "LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"TMDB_API_KEY": "k", "LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"rate limit window too short", map[string]string{"TMDB_API_KEY": "k", "RATE_LIMIT_WINDOW": "10ms"}, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips bounds", map[string]string{"TMDB_API_KEY": "k", "RATE_LIMIT_WINDOW": "10ms", "DISABLE_RATE_LIMIT": "true"}, ""},
		{"port out of range", map[string]string{"TMDB_API_KEY": "k", "HTTP_PORT": "70000"}, "HTTP_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			t.Setenv("TMDB_API_KEY", "")
			t.Setenv("TMDB_READ_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("LoadWithKoanf() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("LoadWithKoanf() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithKoanf() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development mode should not warn")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("production with wildcard origin should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://cinebot.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("production with explicit origins should not warn")
	}
}
