// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/staygraph/internal/api"
	"github.com/tomtom215/staygraph/internal/config"
	"github.com/tomtom215/staygraph/internal/logging"
	"github.com/tomtom215/staygraph/internal/supervisor"
	"github.com/tomtom215/staygraph/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; the default logger writes JSON to stderr.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("data_source", cfg.Data.Source).
		Msg("Starting StayGraph with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := initData(ctx, cfg, logging.WithComponent("data"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize graph data")
	}
	defer func() {
		if err := data.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing data source")
		}
	}()

	warnInsecureSettings(cfg)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig(cfg))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	addDataServices(tree, cfg, data, logging.WithComponent("reload"))

	handler := api.NewHandler(data.Engine,
		api.WithReloadRequester(data.Bus),
		api.WithReloader(data.Reloader),
		api.WithVersion(version),
	)
	server := newHTTPServer(cfg, api.NewRouter(handler, cfg).SetupChi())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func treeConfig(cfg *config.Config) supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	}
}

func warnInsecureSettings(cfg *config.Config) {
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.IsProduction() && cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows every origin (CORS_ORIGINS=*); set explicit origins in production")
	}
}
