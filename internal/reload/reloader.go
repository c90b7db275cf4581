// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package reload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/staygraph/internal/dataset"
	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/metrics"
)

// Reload outcomes, used as metric labels.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

// ErrSourceUnavailable is returned while the breaker is open.
var ErrSourceUnavailable = errors.New("reload: source unavailable")

// BreakerConfig controls when repeated load failures stop further attempts.
type BreakerConfig struct {
	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32 `koanf:"max_failures"`
	// OpenTimeout is how long the breaker stays open before a trial load.
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

// DefaultBreakerConfig returns the default breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{MaxFailures: 3, OpenTimeout: 30 * time.Second}
}

// SwapHook runs after a new snapshot is published.
type SwapHook func(ctx context.Context, snap *graph.Snapshot)

// Reloader loads graphs from a Source and publishes them into a Holder.
// Concurrent Reload calls are serialized.
type Reloader struct {
	source  dataset.Source
	holder  *graph.Holder
	breaker *gobreaker.CircuitBreaker[*graph.Graph]
	logger  zerolog.Logger

	mu    sync.Mutex
	hooks []SwapHook
}

// NewReloader creates a reloader for source.
//
//nolint:gocritic // zerolog.Logger is passed by value by design
func NewReloader(source dataset.Source, holder *graph.Holder, cfg BreakerConfig, logger zerolog.Logger) *Reloader {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig().MaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultBreakerConfig().OpenTimeout
	}

	r := &Reloader{
		source: source,
		holder: holder,
		logger: logger.With().Str("component", "reload").Str("source", source.String()).Logger(),
	}

	name := "graph-source"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	r.breaker = gobreaker.NewCircuitBreaker[*graph.Graph](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// A malformed dataset is not an outage; only I/O style failures count.
		IsSuccessful: func(err error) bool {
			return err == nil || graph.IsValidationError(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Source breaker state changed")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
	return r
}

// OnSwap registers a hook run after every successful reload.
func (r *Reloader) OnSwap(hook SwapHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Source describes the underlying source.
func (r *Reloader) Source() string { return r.source.String() }

// Reload loads a fresh graph and swaps it in. On any failure the current
// snapshot stays published.
func (r *Reloader) Reload(ctx context.Context, reason string) (*graph.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	log := r.logger.With().Str("reason", reason).Logger()

	g, err := r.breaker.Execute(func() (*graph.Graph, error) {
		return r.source.Load(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordGraphReload(ResultRejected, 0)
			log.Warn().Err(err).Msg("Reload rejected, source breaker open")
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		metrics.RecordGraphReload(ResultFailure, time.Since(start))
		log.Error().Err(err).Msg("Reload failed, keeping current graph")
		return nil, fmt.Errorf("reload from %s: %w", r.source, err)
	}

	snap := r.holder.Swap(g, r.source.String())
	elapsed := time.Since(start)
	metrics.RecordGraphReload(ResultSuccess, elapsed)
	PublishGraphMetrics(snap)

	log.Info().
		Uint64("version", snap.Version).
		Int("nodes", g.Len()).
		Int("edges", g.EdgeCount()).
		Dur("duration", elapsed).
		Msg("Graph reloaded")

	for _, hook := range r.hooks {
		hook(ctx, snap)
	}
	return snap, nil
}

// BreakerState reports the breaker state name.
func (r *Reloader) BreakerState() string {
	return r.breaker.State().String()
}

// PublishGraphMetrics exports the size of snap.
func PublishGraphMetrics(snap *graph.Snapshot) {
	stats := snap.Graph.Stats()
	nodes := make(map[string]int, len(stats.NodeCounts))
	for t, n := range stats.NodeCounts {
		nodes[t.String()] = n
	}
	edges := make(map[string]int, len(stats.EdgeCounts))
	for k, n := range stats.EdgeCounts {
		edges[string(k)] = n
	}
	metrics.UpdateGraphGauges(snap.Version, nodes, edges)
}
