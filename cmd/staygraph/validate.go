// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/staygraph/internal/graph"
)

// DatasetReport summarizes a loaded dataset.
type DatasetReport struct {
	Source   string         `json:"source"`
	Encoding string         `json:"encoding"`
	Nodes    int            `json:"nodes"`
	Edges    int            `json:"edges"`
	ByType   map[string]int `json:"nodes_by_type"`
	ByKind   map[string]int `json:"edges_by_kind"`
}

func newReport(source, encoding string, g *graph.Graph) DatasetReport {
	stats := g.Stats()
	r := DatasetReport{
		Source:   source,
		Encoding: encoding,
		Nodes:    stats.Nodes,
		Edges:    stats.Edges,
		ByType:   make(map[string]int, len(stats.NodeCounts)),
		ByKind:   make(map[string]int, len(stats.EdgeCounts)),
	}
	for t, n := range stats.NodeCounts {
		r.ByType[t.String()] = n
	}
	for k, n := range stats.EdgeCounts {
		r.ByKind[string(k)] = n
	}
	return r
}

func newValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load a CSV dataset and report its size",
		Long: `Load every CSV file of the dataset, build the graph and print node and
edge counts. Exits non-zero with the offending file and line when the
dataset is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			g, src, err := loadCSV(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), newReport(src.String(), src.Encoding(), g))
		},
	}
}
