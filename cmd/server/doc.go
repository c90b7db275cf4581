// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package main is the entry point for the StayGraph server.

StayGraph ranks hotels for a guest from a property graph of hotels,
experiences, locations and users. It combines experience ratings, a
personalized PageRank over the graph, collaborative signals from other
guests and, for known users, the similarity to their stay history.

# Application Architecture

	RootSupervisor ("staygraph")
	├── DataSupervisor ("data-layer")
	│   ├── ReloadService   (reload bus consumer)
	│   ├── WatcherService  (STAYGRAPH_WATCH=true)
	│   └── RefreshService  (STAYGRAPH_REFRESH_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Startup order:

 1. Configuration: koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Initial graph load from the configured source; failure is fatal
 4. Recommendation engine with PageRank warm-up after every reload
 5. Reload bus, optional file watcher and refresh ticker
 6. Chi router and HTTP server under the supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests for HTTP_SHUTDOWN_TIMEOUT.

# Example Usage

	export STAYGRAPH_DATA_DIR=/srv/staygraph/data
	export STAYGRAPH_WATCH=true
	./staygraph-server

Serving a snapshot written by `staygraph import`:

	export STAYGRAPH_DATA_SOURCE=badger
	export STAYGRAPH_SNAPSHOT_PATH=/srv/staygraph/snapshots
	export STAYGRAPH_REFRESH_INTERVAL=15m
	./staygraph-server
*/
package main
