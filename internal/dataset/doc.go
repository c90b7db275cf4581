// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package dataset builds graphs from external data.

Two sources are provided:

  - CSVSource reads the hotel export: four node files and four edge files
    in a configurable text encoding (ISO-8859-9 by default). Every record is
    validated through the graph package; failures are reported as
    *graph.ValidationError carrying the file name and line number.
  - SnapshotStore keeps validated graphs in BadgerDB under monotonically
    increasing versions. It also implements Source, which lets a server boot
    from an imported snapshot without the CSV directory.

Typical import flow:

	src, err := dataset.NewCSVSource(dir, "iso-8859-9", dataset.Files{})
	g, err := src.Load(ctx)
	meta, err := store.Save(ctx, g, src.String())
*/
package dataset
