// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package dataset

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/tomtom215/staygraph/internal/graph"
)

// Source produces a fully built, unfrozen graph.
type Source interface {
	Load(ctx context.Context) (*graph.Graph, error)
	String() string
}

// ErrNoSnapshot is returned by SnapshotStore.Load when nothing was imported.
var ErrNoSnapshot = errors.New("dataset: no snapshot stored")

// Files names the CSV files of a dataset directory.
type Files struct {
	Hotels        string `koanf:"hotels"`
	Experiences   string `koanf:"experiences"`
	Locations     string `koanf:"locations"`
	Users         string `koanf:"users"`
	HasExperience string `koanf:"has_experience"`
	StayedAt      string `koanf:"stayed_at"`
	Likes         string `koanf:"likes"`
	LocatedIn     string `koanf:"located_in"`
}

// DefaultFiles returns the standard dataset file names.
func DefaultFiles() Files {
	return Files{
		Hotels:        "hotel_nodes.csv",
		Experiences:   "experience_nodes.csv",
		Locations:     "location_nodes.csv",
		Users:         "user_nodes.csv",
		HasExperience: "has_experience_edges.csv",
		StayedAt:      "stayed_at_edges.csv",
		Likes:         "likes_edges.csv",
		LocatedIn:     "located_in_edges.csv",
	}
}

// withDefaults fills empty names from DefaultFiles.
func (f Files) withDefaults() Files {
	d := DefaultFiles()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Files{
		Hotels:        pick(f.Hotels, d.Hotels),
		Experiences:   pick(f.Experiences, d.Experiences),
		Locations:     pick(f.Locations, d.Locations),
		Users:         pick(f.Users, d.Users),
		HasExperience: pick(f.HasExperience, d.HasExperience),
		StayedAt:      pick(f.StayedAt, d.StayedAt),
		Likes:         pick(f.Likes, d.Likes),
		LocatedIn:     pick(f.LocatedIn, d.LocatedIn),
	}
}

// Names lists every file name in load order.
func (f Files) Names() []string {
	return []string{
		f.Hotels, f.Experiences, f.Locations, f.Users,
		f.HasExperience, f.StayedAt, f.Likes, f.LocatedIn,
	}
}

// Supported text encodings for CSV input.
const (
	EncodingISO88599    = "iso-8859-9"
	EncodingISO88591    = "iso-8859-1"
	EncodingWindows1254 = "windows-1254"
	EncodingUTF8        = "utf-8"
)

// Encodings lists the accepted encoding names.
var Encodings = []string{EncodingISO88599, EncodingUTF8, EncodingISO88591, EncodingWindows1254}

// LookupEncoding resolves an encoding name. An empty name selects
// ISO-8859-9, the encoding the hotel exports are produced in.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingISO88599, "latin5":
		return charmap.ISO8859_9, nil
	case EncodingISO88591, "latin1":
		return charmap.ISO8859_1, nil
	case EncodingWindows1254, "cp1254":
		return charmap.Windows1254, nil
	case EncodingUTF8, "utf8":
		// Strips a leading byte order mark if present.
		return unicode.UTF8BOM, nil
	default:
		return nil, &graph.ValidationError{Op: "encoding", Reason: "unsupported encoding " + name}
	}
}
