// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

// Package reload replaces the published graph while requests keep being
// served from the previous snapshot.
//
// Reload requests are published on the in-process "graph.reload" topic by
// the HTTP API and by the dataset directory Watcher. A single consumer
// (Bus.Serve) performs them through the Reloader, which loads from the
// configured dataset.Source behind a circuit breaker and swaps the result
// into the graph.Holder. Requests arriving during a reload are merged into a
// single follow-up reload.
package reload
