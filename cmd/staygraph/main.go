// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

// Command staygraph is the offline companion of the StayGraph server. It
// validates CSV datasets, imports them into badger snapshots and runs
// one-off rankings without starting the HTTP API.
//
// Examples:
//
//	staygraph validate --data-dir ./data
//	staygraph import --data-dir ./data --snapshot /srv/staygraph/snapshots
//	staygraph snapshots --snapshot /srv/staygraph/snapshots
//	echo '{"experience_preferences":[{"experience_id":1,"importance":5}]}' | staygraph recommend --request -
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
