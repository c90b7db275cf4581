// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/staygraph/internal/graph"
)

// validDataset is a small but complete dataset, keyed by file name.
func validDataset() map[string]string {
	return map[string]string{
		"hotel_nodes.csv": "id,name,rating,hotel_id\n" +
			"1,Sea Breeze,9,501\n" +
			"2,Pine Lodge,,\n",
		"experience_nodes.csv": "id,name,experience_id,description\n" +
			"10,Spa,1,Thermal pools\n" +
			"11,Beach,2,\n",
		"location_nodes.csv": "id,name,location_id\n" +
			"20,Antalya,7\n",
		"user_nodes.csv": "id,name,email\n" +
			"30,Ada,Ada@Example.com\n",
		"has_experience_edges.csv": "source,target,rating\n" +
			"1,10,8.5\n" +
			"2,10,\n" +
			"1,11,9\n",
		"stayed_at_edges.csv": "source,target,rating\n" +
			"30,1,5\n",
		"likes_edges.csv":      "source,target\n30,11\n",
		"located_in_edges.csv": "source,target\n1,20\n",
	}
}

func writeDataset(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func loadDataset(t *testing.T, files map[string]string, enc string) (*graph.Graph, error) {
	t.Helper()
	src, err := NewCSVSource(writeDataset(t, files), enc, Files{})
	if err != nil {
		t.Fatalf("NewCSVSource() error = %v", err)
	}
	return src.Load(context.Background())
}

// --- Test: loading ---

func TestCSVSource_Load(t *testing.T) {
	t.Parallel()

	g, err := loadDataset(t, validDataset(), EncodingUTF8)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	stats := g.Stats()
	if stats.Nodes != 6 || stats.Edges != 6 {
		t.Errorf("stats = %d nodes, %d edges; want 6, 6", stats.Nodes, stats.Edges)
	}

	sea, _ := g.Node(1)
	hotel, ok := sea.Hotel()
	if !ok || hotel.Name != "Sea Breeze" || hotel.RatingOr(0) != 9 || hotel.HotelID != 501 {
		t.Errorf("hotel 1 = %+v", hotel)
	}

	pine, _ := g.Node(2)
	if h, _ := pine.Hotel(); h.Rating != nil || h.HotelID != 2 {
		t.Errorf("hotel 2 = %+v, want unrated with hotel id defaulting to node id", h)
	}

	if e, ok := g.EdgeData(2, 10); !ok || e.HasRating {
		t.Errorf("edge 2-10 = %+v, want no rating", e)
	}
	if e, _ := g.EdgeData(1, 10); e.Rating != 8.5 {
		t.Errorf("edge 1-10 rating = %v, want 8.5", e.Rating)
	}

	if _, ok := g.UserByEmail("ada@example.com"); !ok {
		t.Error("user lookup by normalized email failed")
	}
	if n, ok := g.ExperienceByExternalID(1); !ok || n.ID != 10 {
		t.Errorf("experience 1 resolved to %v", n.ID)
	}
	if exp, _ := g.Node(10); exp.Attrs.(graph.Experience).Description != "Thermal pools" {
		t.Errorf("description = %+v", exp.Attrs)
	}
	if loc, ok := g.LocationOf(1); !ok || loc.ID != 20 {
		t.Errorf("LocationOf(1) = %v, %v", loc.ID, ok)
	}
}

func TestCSVSource_Encodings(t *testing.T) {
	t.Parallel()

	files := validDataset()
	files["location_nodes.csv"] = "id,name,location_id\n20,Çeşme,7\n"

	encoded, err := charmap.ISO8859_9.NewEncoder().String(files["location_nodes.csv"])
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	latin5 := validDataset()
	latin5["location_nodes.csv"] = encoded

	bom := validDataset()
	bom["location_nodes.csv"] = "\ufeff" + files["location_nodes.csv"]

	tests := []struct {
		name  string
		files map[string]string
		enc   string
	}{
		{"iso-8859-9 default", latin5, ""},
		{"iso-8859-9 explicit", latin5, "ISO-8859-9"},
		{"utf-8", files, EncodingUTF8},
		{"utf-8 with byte order mark", bom, EncodingUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := loadDataset(t, tt.files, tt.enc)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			n, _ := g.Node(20)
			if got := n.Attrs.DisplayName(); got != "Çeşme" {
				t.Errorf("location name = %q, want %q", got, "Çeşme")
			}
		})
	}
}

func TestLookupEncoding(t *testing.T) {
	t.Parallel()

	for _, name := range append(Encodings, "", "LATIN5", "cp1254", "utf8") {
		if _, err := LookupEncoding(name); err != nil {
			t.Errorf("LookupEncoding(%q) error = %v", name, err)
		}
	}
	if _, err := LookupEncoding("ebcdic"); !graph.IsValidationError(err) {
		t.Errorf("LookupEncoding(ebcdic) error = %v, want validation error", err)
	}
	if _, err := NewCSVSource(t.TempDir(), "ebcdic", Files{}); err == nil {
		t.Error("NewCSVSource() with unknown encoding should fail")
	}
	if _, err := NewCSVSource("", "", Files{}); err == nil {
		t.Error("NewCSVSource() without directory should fail")
	}
}

// --- Test: validation ---

func TestCSVSource_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		wantLine int
		wantText string
	}{
		{
			name:     "unknown column",
			file:     "hotel_nodes.csv",
			content:  "id,name,rating,stars\n1,A,9,5\n",
			wantLine: 1,
			wantText: `unknown column "stars"`,
		},
		{
			name:     "missing required column",
			file:     "user_nodes.csv",
			content:  "id,name\n30,Ada\n",
			wantLine: 1,
			wantText: `missing required column "email"`,
		},
		{
			name:     "malformed id",
			file:     "hotel_nodes.csv",
			content:  "id,name,rating\n1,A,9\nx,B,8\n",
			wantLine: 3,
			wantText: "not an integer",
		},
		{
			name:     "malformed rating",
			file:     "stayed_at_edges.csv",
			content:  "source,target,rating\n30,1,great\n",
			wantLine: 2,
			wantText: "not a number",
		},
		{
			name:     "duplicate node id",
			file:     "location_nodes.csv",
			content:  "id,name\n20,Antalya\n1,Clash\n",
			wantLine: 3,
			wantText: "duplicate",
		},
		{
			name:     "edge to missing node",
			file:     "likes_edges.csv",
			content:  "source,target\n30,11\n30,99\n",
			wantLine: 3,
			wantText: "missing node 99",
		},
		{
			name:     "rating on a likes edge file",
			file:     "likes_edges.csv",
			content:  "source,target,rating\n30,11,5\n",
			wantLine: 1,
			wantText: `unknown column "rating"`,
		},
		{
			name:     "wrong field count",
			file:     "experience_nodes.csv",
			content:  "id,name,experience_id\n10,Spa,1\n11,Beach\n",
			wantLine: 3,
			wantText: "wrong number of fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			files := validDataset()
			files[tt.file] = tt.content

			_, err := loadDataset(t, files, EncodingUTF8)
			var ve *graph.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Load() error = %v, want *graph.ValidationError", err)
			}
			if ve.File != tt.file || ve.Line != tt.wantLine {
				t.Errorf("position = %s:%d, want %s:%d", ve.File, ve.Line, tt.file, tt.wantLine)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
		})
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	t.Parallel()

	files := validDataset()
	delete(files, "located_in_edges.csv")

	_, err := loadDataset(t, files, EncodingUTF8)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestCSVSource_CancelledContext(t *testing.T) {
	t.Parallel()

	src, err := NewCSVSource(writeDataset(t, validDataset()), EncodingUTF8, Files{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCSVSource_CustomFileNames(t *testing.T) {
	t.Parallel()

	files := validDataset()
	files["hotel_nodes_2.csv"] = files["hotel_nodes.csv"]
	delete(files, "hotel_nodes.csv")

	src, err := NewCSVSource(writeDataset(t, files), EncodingUTF8, Files{Hotels: "hotel_nodes_2.csv"})
	if err != nil {
		t.Fatal(err)
	}
	if src.Files().Likes != "likes_edges.csv" {
		t.Errorf("unset names should default, got %q", src.Files().Likes)
	}
	if _, err := src.Load(context.Background()); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if !strings.HasPrefix(src.String(), "csv:") || src.Encoding() != EncodingUTF8 {
		t.Errorf("String() = %q, Encoding() = %q", src.String(), src.Encoding())
	}
}
