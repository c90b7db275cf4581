// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staygraph/internal/config"
	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/logging"
	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/reload"
	"github.com/tomtom215/staygraph/internal/supervisor"
	"github.com/tomtom215/staygraph/internal/supervisor/services"
)

// DataComponents holds the graph data plane.
type DataComponents struct {
	Holder   *graph.Holder
	Reloader *reload.Reloader
	Bus      *reload.Bus
	Engine   *recommend.Engine

	closeSource func() error
}

// initData opens the configured source, performs the initial load and builds
// the engine. The initial load must succeed; a server without a graph has
// nothing to rank.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initData(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*DataComponents, error) {
	source, closeSource, err := cfg.NewSource()
	if err != nil {
		return nil, fmt.Errorf("open data source: %w", err)
	}

	holder := graph.NewHolder()
	reloader := reload.NewReloader(source, holder, cfg.Data.Breaker, logger)

	snap, err := reloader.Reload(ctx, "startup")
	if err != nil {
		_ = closeSource()
		return nil, fmt.Errorf("initial graph load from %s: %w", source, err)
	}
	stats := snap.Graph.Stats()
	logger.Info().
		Str("source", source.String()).
		Uint64("version", snap.Version).
		Int("nodes", stats.Nodes).
		Int("edges", stats.Edges).
		Msg("Graph loaded")

	engine, err := recommend.NewEngine(holder, &cfg.Recommend, logger)
	if err != nil {
		_ = closeSource()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	if err := engine.Warm(ctx); err != nil {
		logger.Warn().Err(err).Msg("PageRank warm-up failed")
	}
	reloader.OnSwap(func(ctx context.Context, snap *graph.Snapshot) {
		if err := engine.Warm(ctx); err != nil {
			logger.Warn().Err(err).Uint64("version", snap.Version).Msg("PageRank warm-up failed")
		}
	})

	bus := reload.NewBus(logger, logging.NewWatermillLogger(logging.WithComponent("watermill")))

	return &DataComponents{
		Holder:      holder,
		Reloader:    reloader,
		Bus:         bus,
		Engine:      engine,
		closeSource: closeSource,
	}, nil
}

// addDataServices registers the reload consumer and the optional watcher and
// refresh ticker with the data layer.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func addDataServices(tree *supervisor.SupervisorTree, cfg *config.Config, data *DataComponents, logger zerolog.Logger) {
	tree.AddDataService(services.NewReloadService(data.Bus, data.Reloader))

	if cfg.Data.Watch {
		watcher := reload.NewWatcher(cfg.Data.Dir, cfg.Data.Files.Names(), cfg.Data.WatchDebounce, data.Bus, logger)
		tree.AddDataService(services.NewWatcherService(watcher))
		logger.Info().Str("dir", cfg.Data.Dir).Msg("Dataset watcher added to supervisor tree")
	}

	if cfg.Data.RefreshInterval > 0 {
		tree.AddDataService(services.NewRefreshService(data.Bus, cfg.Data.RefreshInterval, logger))
		logger.Info().Dur("interval", cfg.Data.RefreshInterval).Msg("Periodic refresh added to supervisor tree")
	}
}

// Close releases the bus and the data source.
func (d *DataComponents) Close() error {
	busErr := d.Bus.Close()
	if err := d.closeSource(); err != nil {
		return err
	}
	return busErr
}
