// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package supervisor provides process supervision for StayGraph using suture v4.

The tree separates the graph data plane from the HTTP surface so a crashing
reload consumer or file watcher never takes the API down:

	RootSupervisor ("staygraph")
	├── DataSupervisor ("data-layer")
	│   ├── ReloadService      (reload bus consumer)
	│   ├── WatcherService     (if STAYGRAPH_WATCH)
	│   └── RefreshService     (if STAYGRAPH_REFRESH_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (service start, failure, backoff) are logged through
sutureslog, bridged to zerolog by logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    FailureThreshold: cfg.Supervisor.FailureThreshold,
	    FailureDecay:     cfg.Supervisor.FailureDecay,
	    FailureBackoff:   cfg.Supervisor.FailureBackoff,
	    ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	tree.AddDataService(services.NewReloadService(bus, reloader))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
