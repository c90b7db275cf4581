// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staygraph/internal/reload"
)

// RefreshService requests a graph reload on a fixed interval. It covers
// sources the file watcher cannot observe, such as a badger snapshot store
// rewritten by `staygraph import`.
type RefreshService struct {
	requester reload.Requester
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewRefreshService creates the service. A non-positive interval becomes 1h.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(requester reload.Requester, interval time.Duration, logger zerolog.Logger) *RefreshService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RefreshService{
		requester: requester,
		interval:  interval,
		logger:    logger.With().Str("service", "refresh").Logger(),
		name:      "graph-refresh",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("Periodic graph refresh running")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if err := s.requester.RequestReload(ctx, "scheduled"); err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled reload request failed")
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *RefreshService) String() string {
	return s.name
}
