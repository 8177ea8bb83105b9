// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinebot/internal/logging"
)

// Collector reclaims value-log space in a Badger database.
//
// Satisfied by *cache.Persistent and *watchlist.BadgerStore.
type Collector interface {
	RunGC(ratio float64) error
}

const (
	defaultGCInterval = 10 * time.Minute
	defaultGCRatio    = 0.5
)

// ValueLogGCService runs a Collector on a fixed interval. A failed pass is
// logged and retried on the next tick; it never restarts the service.
type ValueLogGCService struct {
	name      string
	collector Collector
	interval  time.Duration
	ratio     float64
}

// NewValueLogGCService creates a GC loop for one database. name identifies
// the database in logs, e.g. "watchlist".
func NewValueLogGCService(name string, c Collector, interval time.Duration) *ValueLogGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &ValueLogGCService{
		name:      name,
		collector: c,
		interval:  interval,
		ratio:     defaultGCRatio,
	}
}

// Serve implements suture.Service.
func (s *ValueLogGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.collector.RunGC(s.ratio); err != nil {
				logging.Warn().Err(err).Str("db", s.name).Msg("Badger value log GC failed")
				continue
			}
			logging.Debug().Str("db", s.name).Dur("took", time.Since(start)).Msg("Badger value log GC complete")
		}
	}
}

func (s *ValueLogGCService) String() string {
	return s.name + "-gc"
}
