// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

/*
Package tmdb is the HTTP client for The Movie Database v3 API.

The client converts TMDB wire payloads into internal/models types and applies
the presentation trims the rest of the system expects (top-billed cast, key
crew jobs, YouTube-only videos, merged watch providers). It carries no cache
and no circuit breaker; both live in internal/gateway.

Request Configuration:
  - Authentication: v4 read token as a Bearer header, or the v3 api_key query parameter
  - Pacing: a token bucket (golang.org/x/time/rate) shared by all calls
  - Rate limits: HTTP 429 is retried with exponential backoff, honoring Retry-After
  - Errors: 404 wraps models.ErrNotFound, other non-2xx statuses return *StatusError,
    undecodable bodies wrap ErrMalformed
*/
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinebot/internal/config"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/metrics"
	"github.com/tomtom215/cinebot/internal/models"
)

// ErrMalformed is wrapped when a response body cannot be decoded.
var ErrMalformed = errors.New("malformed response")

// maxErrorBodySize limits how much of an error body is kept for diagnostics.
const maxErrorBodySize = 4 * 1024

// StatusError reports a non-2xx response other than 404.
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s: unexpected status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Image sizes requested from the TMDB image CDN.
const (
	posterSize   = "w500"
	profileSize  = "w185"
	backdropSize = "w1280"
	stillSize    = "w300"
	logoSize     = "original"
)

// Client talks to the TMDB v3 REST API.
type Client struct {
	baseURL    string
	imageBase  string
	apiKey     string
	readToken  string
	language   string
	region     string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a TMDB client from configuration.
func NewClient(cfg *config.TMDBConfig) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	imageBase := cfg.ImageBaseURL
	if !strings.HasSuffix(imageBase, "/") {
		imageBase += "/"
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		imageBase:  imageBase,
		apiKey:     cfg.APIKey,
		readToken:  cfg.ReadToken,
		language:   cfg.Language,
		region:     cfg.Region,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
	}
}

// Region returns the ISO 3166-1 country used for certifications.
func (c *Client) Region() string {
	return c.region
}

// getJSON issues a GET against path and decodes the body into result.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb %s: wait for rate limiter: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}
	if c.readToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.readToken)
	} else if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, "error", time.Since(start))
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamRequest(endpoint, statusClass(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("tmdb %s: %w", path, models.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("tmdb %s: %w: %v", path, ErrMalformed, err)
	}
	return nil
}

// doRequestWithRateLimit executes req, retrying on HTTP 429 with exponential
// backoff. A Retry-After header in seconds overrides the computed delay.
func (c *Client) doRequestWithRateLimit(req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		if attempt == c.maxRetries {
			return nil, &StatusError{
				StatusCode: http.StatusTooManyRequests,
				Path:       req.URL.Path,
				Body:       fmt.Sprintf("rate limit exceeded after %d retries", c.maxRetries),
			}
		}

		retryDelay := c.baseDelay * (1 << attempt)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if d, err := time.ParseDuration(retryAfter + "s"); err == nil {
				retryDelay = d
			}
		}

		logging.Warn().
			Dur("retry_delay", retryDelay).
			Int("attempt", attempt+1).
			Int("max_retries", c.maxRetries).
			Msg("TMDB rate limited (HTTP 429), retrying")

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(retryDelay):
		}
	}
}

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// imageURL joins a CDN size and an image path. Empty paths stay empty so the
// presentation layer can fall back to a placeholder.
func (c *Client) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return c.imageBase + size + path
}
