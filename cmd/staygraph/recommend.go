// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/logging"
	"github.com/tomtom215/staygraph/internal/models"
	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/validation"
)

type recommendFlags struct {
	request  string
	source   string
	snapshot string
	topK     int
	explain  bool
}

func newRecommendCmd(flags *globalFlags) *cobra.Command {
	rf := &recommendFlags{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank hotels for one request",
		Long: `Load the dataset, run a single recommendation request and print the
ranked hotels as JSON. The request uses the same body as
POST /api/v1/recommendations.`,
		Example: `  staygraph recommend --data-dir ./data --request request.json
  cat request.json | staygraph recommend --request - --explain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, flags, rf)
		},
	}

	f := cmd.Flags()
	f.StringVar(&rf.request, "request", "-", "request JSON file, or - for stdin")
	f.StringVar(&rf.source, "source", "", "data source: csv or badger (default: data.source)")
	f.StringVar(&rf.snapshot, "snapshot", "", "badger snapshot directory (default: data.snapshot_path)")
	f.IntVar(&rf.topK, "top-k", 0, "number of hotels to return (default: recommend.limits.top_k)")
	f.BoolVar(&rf.explain, "explain", false, "include the score breakdown of every hotel")
	return cmd
}

func runRecommend(cmd *cobra.Command, flags *globalFlags, rf *recommendFlags) error {
	cfg, err := flags.loadConfig(cmd)
	if err != nil {
		return err
	}
	if rf.source != "" {
		cfg.Data.Source = rf.source
	}
	if rf.snapshot != "" {
		cfg.Data.SnapshotPath = rf.snapshot
	}
	if rf.topK > 0 {
		cfg.Recommend.Limits.TopK = rf.topK
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	req, err := readRequest(cmd.InOrStdin(), rf.request)
	if err != nil {
		return err
	}

	source, closeSource, err := cfg.NewSource()
	if err != nil {
		return err
	}
	defer func() { _ = closeSource() }()

	g, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}
	holder := graph.NewHolder()
	holder.Swap(g, source.String())

	engine, err := recommend.NewEngine(holder, &cfg.Recommend, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}
	resp, err := engine.Recommend(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rf.explain {
		items := make([]models.ExplainedRecommendation, len(resp.Items))
		for i := range resp.Items {
			items[i] = models.NewExplainedRecommendation(resp.Items[i])
		}
		return writeJSON(out, items)
	}
	items := make([]models.HotelRecommendation, len(resp.Items))
	for i := range resp.Items {
		items[i] = models.NewHotelRecommendation(resp.Items[i])
	}
	return writeJSON(out, items)
}

// readRequest decodes and validates a request from path, or from stdin when
// path is "-".
func readRequest(stdin io.Reader, path string) (recommend.Request, error) {
	var req recommend.Request

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return req, fmt.Errorf("read request: %w", err)
	}
	if len(data) == 0 {
		return req, errors.New("request is empty")
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	req.Normalize()
	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}
