// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/staygraph/internal/config"
	"github.com/tomtom215/staygraph/internal/dataset"
	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dataDir    string
	encoding   string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "staygraph",
		Short: "StayGraph - personalized hotel recommendations",
		Long: `StayGraph ranks hotels for a guest from a graph of hotels, experiences,
locations and users.

This tool works on datasets directly: validate CSV files, import them into
badger snapshots for the server, and run single rankings.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: CONFIG_PATH or staygraph.yaml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "CSV dataset directory (overrides data.dir)")
	pf.StringVar(&flags.encoding, "encoding", "", "CSV text encoding: "+strings.Join(dataset.Encodings, ", "))
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newValidateCmd(flags),
		newImportCmd(flags),
		newSnapshotsCmd(flags),
		newRecommendCmd(flags),
	)
	return root
}

// loadConfig loads the layered configuration and applies flag overrides.
// CLI logs go to stderr in console format so stdout stays machine-readable.
func (f *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFrom(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.dataDir != "" {
		cfg.Data.Dir = f.dataDir
	}
	if f.encoding != "" {
		cfg.Data.Encoding = f.encoding
	}

	logging.Init(logging.Config{
		Level:     f.logLevel,
		Format:    "console",
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	return cfg, nil
}

// loadCSV reads the CSV dataset named by the configuration.
func loadCSV(ctx context.Context, cfg *config.Config) (*graph.Graph, *dataset.CSVSource, error) {
	src, err := dataset.NewCSVSource(cfg.Data.Dir, cfg.Data.Encoding, cfg.Data.Files)
	if err != nil {
		return nil, nil, err
	}
	g, err := src.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", src, err)
	}
	return g, src, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
