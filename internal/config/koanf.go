// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinebot/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/",
			Language:          "en-US",
			Region:            "US",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             10,
		},
		Cache: CacheConfig{
			TTL:        time.Hour,
			GenreTTL:   7 * 24 * time.Hour,
			MaxEntries: 10000,
		},
		Dispatch: DispatchConfig{
			AutoSelectSingle:  true,
			ClearOnViewChange: true,
			MaxResults:        10,
			MaxPeople:         5,
			HistoryDepth:      20,
			ProviderCountry:   "US",
		},
		Session: SessionConfig{
			IdleTimeout:  30 * time.Minute,
			ReapInterval: time.Minute,
		},
		Watchlist: WatchlistConfig{
			Store: "memory",
			Path:  "/data/watchlist",
		},
		Server: ServerConfig{
			Port:        3030,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration from defaults, then the optional config
// file, then mapped environment variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"tmdb_api_key":             "tmdb.api_key",
	"tmdb_read_token":          "tmdb.read_token",
	"tmdb_base_url":            "tmdb.base_url",
	"tmdb_image_base_url":      "tmdb.image_base_url",
	"tmdb_language":            "tmdb.language",
	"tmdb_region":              "tmdb.region",
	"tmdb_timeout":             "tmdb.timeout",
	"tmdb_requests_per_second": "tmdb.requests_per_second",
	"tmdb_burst":               "tmdb.burst",

	"cache_ttl":             "cache.ttl",
	"cache_genre_ttl":       "cache.genre_ttl",
	"cache_max_entries":     "cache.max_entries",
	"cache_persistent_path": "cache.persistent_path",

	"dispatch_auto_select_single":   "dispatch.auto_select_single",
	"dispatch_clear_on_view_change": "dispatch.clear_on_view_change",
	"dispatch_max_results":          "dispatch.max_results",
	"dispatch_max_people":           "dispatch.max_people",
	"dispatch_history_depth":        "dispatch.history_depth",
	"provider_country":              "dispatch.provider_country",

	"session_idle_timeout":      "session.idle_timeout",
	"session_reap_interval":     "session.reap_interval",
	"session_end_on_disconnect": "session.end_on_disconnect",

	"watchlist_store": "watchlist.store",
	"watchlist_path":  "watchlist.path",

	"http_host":      "server.host",
	"http_port":      "server.port",
	"server_timeout": "server.timeout",
	"environment":    "server.environment",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns the koanf path for an environment variable, or ""
// to skip variables that are not part of the configuration surface.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - HTTP_PORT -> server.port
//   - PROVIDER_COUNTRY -> dispatch.provider_country
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
