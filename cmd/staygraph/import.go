// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/staygraph/internal/dataset"
	"github.com/tomtom215/staygraph/internal/logging"
)

// ImportResult is printed after a successful import.
type ImportResult struct {
	Snapshot dataset.SnapshotMeta `json:"snapshot"`
	Path     string               `json:"path"`
	Pruned   int                  `json:"pruned"`
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	var (
		snapshotPath string
		retain       int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV dataset into a badger snapshot store",
		Long: `Validate the CSV dataset and store it as a new snapshot version. A server
started with STAYGRAPH_DATA_SOURCE=badger serves the latest version.

Older versions beyond --retain are pruned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if snapshotPath == "" {
				snapshotPath = cfg.Data.SnapshotPath
			}
			if snapshotPath == "" {
				return errors.New("--snapshot or STAYGRAPH_SNAPSHOT_PATH is required")
			}
			if retain <= 0 {
				retain = cfg.Data.SnapshotRetain
			}

			g, src, err := loadCSV(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			store, err := dataset.OpenSnapshotStore(snapshotPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing snapshot store")
				}
			}()

			meta, err := store.Save(cmd.Context(), g, src.String())
			if err != nil {
				return err
			}
			pruned, err := store.Prune(retain)
			if err != nil {
				return err
			}
			logging.Info().Uint64("version", meta.Version).Int("pruned", pruned).Msg("Snapshot imported")

			return writeJSON(cmd.OutOrStdout(), ImportResult{Snapshot: meta, Path: snapshotPath, Pruned: pruned})
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "badger snapshot directory (default: data.snapshot_path)")
	cmd.Flags().IntVar(&retain, "retain", 0, "snapshot versions to keep (default: data.snapshot_retain)")
	return cmd
}

func newSnapshotsCmd(flags *globalFlags) *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List the versions in a snapshot store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if snapshotPath == "" {
				snapshotPath = cfg.Data.SnapshotPath
			}
			if snapshotPath == "" {
				return errors.New("--snapshot or STAYGRAPH_SNAPSHOT_PATH is required")
			}

			store, err := dataset.OpenSnapshotStore(snapshotPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			metas, err := store.List()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), metas)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "badger snapshot directory (default: data.snapshot_path)")
	return cmd
}
