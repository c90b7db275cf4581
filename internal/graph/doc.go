// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

// Package graph implements the in-memory typed graph that backs hotel
// recommendations.
//
// # Model
//
// The graph is undirected. Every node carries exactly one of four typed
// attribute variants:
//
//   - Hotel: name, optional rating (0-10), external hotel id
//   - Experience: name, external experience id, description
//   - Location: name, external location id
//   - User: name, email (external identity key)
//
// Edges carry a relation kind and an optional rating. The kinds constrain
// which node types they may join:
//
//	HAS_EXPERIENCE  Hotel <-> Experience
//	STAYED_AT       User  <-> Hotel
//	LIKES           User  <-> Experience
//	LOCATED_IN      Hotel <-> Location
//
// # Lifecycle
//
// A Graph is built once by a loader and then frozen. Frozen graphs are never
// mutated, so any number of goroutines may query them without locking. A
// reload builds a brand-new Graph and publishes it through a Holder:
//
//	holder := graph.NewHolder()
//	snap := holder.Swap(g, "csv:/data")
//
//	// request path
//	snap := holder.Current()
//	if snap == nil {
//	    return ErrNoGraph
//	}
//
// Requests read Current once and use that snapshot until they finish.
//
// # Lookups
//
// Lookups never fail with an error: absence is reported through a boolean.
// Mutations report problems as *ValidationError.
package graph
