// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package config provides centralized configuration management for StayGraph.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

  - Built-in defaults (Default)
  - An optional YAML file: CONFIG_PATH, else the first of DefaultConfigPaths
  - Environment variables listed in the mapping table below

Environment variables not in the table are ignored.

# Environment Variables

HTTP Server (server):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)
  - REQUEST_TIMEOUT: Budget for one recommendation (default: 10s)
  - ENVIRONMENT: development or production

Graph data (data):
  - STAYGRAPH_DATA_SOURCE: csv or badger (default: csv)
  - STAYGRAPH_DATA_DIR: Directory with the CSV files (default: data)
  - STAYGRAPH_DATA_ENCODING: iso-8859-9, utf-8, iso-8859-1 or windows-1254
  - STAYGRAPH_HOTELS_FILE and friends: Override individual file names
  - STAYGRAPH_SNAPSHOT_PATH: Badger directory for the badger source
  - STAYGRAPH_SNAPSHOT_RETAIN: Snapshots kept by `staygraph import`
  - STAYGRAPH_WATCH: Reload when CSV files change
  - STAYGRAPH_WATCH_DEBOUNCE: Quiet period before reloading (default: 2s)
  - STAYGRAPH_REFRESH_INTERVAL: Periodic reload interval, 0 disables (default: 0)
  - RELOAD_BREAKER_FAILURES, RELOAD_BREAKER_TIMEOUT: Source circuit breaker

Ranking (recommend):
  - RECOMMEND_TOP_K, RECOMMEND_MAX_PREFERENCES
  - RECOMMEND_COLLABORATIVE_MODE: cooccurrence or similar_users
  - RECOMMEND_LOCATION_BONUS
  - RECOMMEND_PAGERANK_DAMPING, RECOMMEND_PAGERANK_MAX_ITER,
    RECOMMEND_PAGERANK_TOLERANCE, RECOMMEND_PAGERANK_CACHE

Fusion weights are only settable from the YAML file.

Security (security):
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - MAX_BODY_BYTES: Request body limit (default: 1MB)

Logging (logging):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Supervisor (supervisor):
  - SUPERVISOR_FAILURE_THRESHOLD, SUPERVISOR_FAILURE_DECAY,
    SUPERVISOR_FAILURE_BACKOFF, SUPERVISOR_SHUTDOWN_TIMEOUT

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logging.Init(cfg.LoggingOptions())
*/
package config
