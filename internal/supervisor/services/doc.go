// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

// Package services provides suture service wrappers for StayGraph's
// long-running components: the HTTP server, the reload bus consumer, the
// data-directory watcher and the periodic refresh ticker.
//
// Each wrapper accepts a narrow interface so it can be tested without the
// real component.
package services
