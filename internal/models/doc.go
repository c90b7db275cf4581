// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package models defines the JSON shapes returned by the StayGraph HTTP API.

Every endpoint answers with an APIResponse envelope. Ranking results are
converted from recommend.Recommendation into HotelRecommendation, which is
where display values are rounded to two decimals; the engine itself keeps
full precision so ranking and tie-breaking are unaffected by presentation.
*/
package models
