// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

// Package recommend ranks hotels for a guest's experience preferences.
//
// # Signals
//
// Each candidate hotel (one that offers at least one requested experience)
// is scored from five signals:
//
//   - avgExpRating: mean rating of the requested experiences the hotel offers
//   - selectedExpScore: the same ratings weighted by importance/5
//   - normalizedPageRank: personalized weighted PageRank, scaled to 0-10
//   - hotelRating: the hotel's own rating (0 when unrated)
//   - collaborativeScore: other guests' ratings of the hotel
//
// When the guest is known, a history signal (experience overlap with past
// stays and likes) is blended in, and hotels in the requested location
// receive a fixed bonus. See FusionWeights for the formula.
//
// # Determinism
//
// Given the same graph and request the engine returns identical results.
// Every iteration over nodes is in ascending id order and ties in the final
// score are broken by ascending node id.
//
// # Usage
//
//	holder := graph.NewHolder()
//	holder.Swap(g, "csv:/data")
//
//	engine, err := recommend.NewEngine(holder, recommend.DefaultConfig(), logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Preferences: []recommend.Preference{{ExperienceID: 1, Importance: 5}},
//	    UserEmail:   "guest@example.com",
//	})
//
// # Thread Safety
//
// The engine keeps no per-request mutable state. PageRank results are cached
// per graph version, so a reload never serves scores of an older graph.
package recommend
