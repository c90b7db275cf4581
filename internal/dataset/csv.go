// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/tomtom215/staygraph/internal/graph"
)

// CSVSource loads a graph from a directory of node and edge CSV files.
type CSVSource struct {
	dir      string
	files    Files
	encName  string
	encoding encoding.Encoding
}

// NewCSVSource creates a CSV source rooted at dir. Empty file names fall back
// to DefaultFiles.
func NewCSVSource(dir, encodingName string, files Files) (*CSVSource, error) {
	if dir == "" {
		return nil, errors.New("dataset: directory is required")
	}
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if encodingName == "" {
		encodingName = EncodingISO88599
	}
	return &CSVSource{
		dir:      dir,
		files:    files.withDefaults(),
		encName:  strings.ToLower(encodingName),
		encoding: enc,
	}, nil
}

// String implements Source.
func (s *CSVSource) String() string {
	return "csv:" + s.dir
}

// Dir returns the dataset directory.
func (s *CSVSource) Dir() string { return s.dir }

// Files returns the resolved file names.
func (s *CSVSource) Files() Files { return s.files }

// Encoding returns the configured text encoding name.
func (s *CSVSource) Encoding() string { return s.encName }

// Load reads all node files, then all edge files, into a new graph.
func (s *CSVSource) Load(ctx context.Context) (*graph.Graph, error) {
	g := graph.New()

	steps := []struct {
		file   string
		schema schema
		load   func(*graph.Graph, row) error
	}{
		{s.files.Hotels, hotelSchema, loadHotel},
		{s.files.Experiences, experienceSchema, loadExperience},
		{s.files.Locations, locationSchema, loadLocation},
		{s.files.Users, userSchema, loadUser},
		{s.files.HasExperience, ratedEdgeSchema, edgeLoader(graph.HasExperience)},
		{s.files.StayedAt, ratedEdgeSchema, edgeLoader(graph.StayedAt)},
		{s.files.Likes, edgeSchema, edgeLoader(graph.Likes)},
		{s.files.LocatedIn, edgeSchema, edgeLoader(graph.LocatedIn)},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := s.readTable(step.file, step.schema)
		if err != nil {
			return nil, err
		}
		for _, r := range t.rows {
			if err := step.load(g, r); err != nil {
				return nil, annotate(err, r)
			}
		}
	}
	return g, nil
}

// schema lists the columns a file must and may carry.
type schema struct {
	required []string
	optional []string
}

var (
	hotelSchema      = schema{required: []string{"id", "name", "rating"}, optional: []string{"hotel_id"}}
	experienceSchema = schema{required: []string{"id", "name", "experience_id"}, optional: []string{"description"}}
	locationSchema   = schema{required: []string{"id", "name"}, optional: []string{"location_id"}}
	userSchema       = schema{required: []string{"id", "name", "email"}}
	ratedEdgeSchema  = schema{required: []string{"source", "target"}, optional: []string{"rating"}}
	edgeSchema       = schema{required: []string{"source", "target"}}
)

type table struct {
	rows []row
}

// row is one data record with its header index and source position.
type row struct {
	file    string
	line    int
	columns map[string]int
	values  []string
}

func (s *CSVSource) readTable(name string, sc schema) (*table, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer f.Close()

	return parseTable(name, s.encoding.NewDecoder().Reader(f), sc)
}

func parseTable(name string, r io.Reader, sc schema) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &graph.ValidationError{Op: "parse", Reason: "missing header row", File: name}
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	columns, verr := indexHeader(header, sc)
	if verr != nil {
		return nil, verr.At(name, 1)
	}

	t := &table{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := reader.FieldPos(0)
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, row{file: name, line: line, columns: columns, values: rec})
	}
	return t, nil
}

func indexHeader(header []string, sc schema) (map[string]int, *graph.ValidationError) {
	allowed := make(map[string]bool, len(sc.required)+len(sc.optional))
	for _, c := range sc.required {
		allowed[c] = true
	}
	for _, c := range sc.optional {
		allowed[c] = true
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if !allowed[name] {
			return nil, &graph.ValidationError{Op: "parse", Reason: fmt.Sprintf("unknown column %q", h)}
		}
		if _, dup := columns[name]; dup {
			return nil, &graph.ValidationError{Op: "parse", Reason: fmt.Sprintf("duplicate column %q", h)}
		}
		columns[name] = i
	}
	for _, c := range sc.required {
		if _, ok := columns[c]; !ok {
			return nil, &graph.ValidationError{Op: "parse", Reason: fmt.Sprintf("missing required column %q", c)}
		}
	}
	return columns, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &graph.ValidationError{Op: "parse", Reason: pe.Err.Error(), File: name, Line: pe.Line}
	}
	return fmt.Errorf("dataset: read %s: %w", name, err)
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// annotate attaches the row position to validation errors from the graph.
func annotate(err error, r row) error {
	var ve *graph.ValidationError
	if errors.As(err, &ve) && ve.File == "" {
		return ve.At(r.file, r.line)
	}
	return err
}

// --- Row accessors ---

// cell returns the trimmed value of col; empty when the column is absent.
func (r row) cell(col string) string {
	i, ok := r.columns[col]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r row) fail(format string, args ...any) error {
	return &graph.ValidationError{Op: "parse", Reason: fmt.Sprintf(format, args...), File: r.file, Line: r.line}
}

func (r row) requiredInt(col string) (int64, error) {
	v, ok, err := r.optionalInt(col)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, r.fail("column %q is empty", col)
	}
	return v, nil
}

func (r row) optionalInt(col string) (int64, bool, error) {
	s := r.cell(col)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Spreadsheet exports write whole numbers as "12.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, false, r.fail("column %q: %q is not an integer", col, s)
		}
		v = int64(f)
	}
	return v, true, nil
}

func (r row) optionalFloat(col string) (*float64, error) {
	s := r.cell(col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, r.fail("column %q: %q is not a number", col, s)
	}
	return &v, nil
}

// --- Loaders ---

func loadHotel(g *graph.Graph, r row) error {
	id, err := r.requiredInt("id")
	if err != nil {
		return err
	}
	rating, err := r.optionalFloat("rating")
	if err != nil {
		return err
	}
	hotelID, ok, err := r.optionalInt("hotel_id")
	if err != nil {
		return err
	}
	if !ok {
		hotelID = id
	}
	return g.AddNode(graph.NodeID(id), graph.Hotel{Name: r.cell("name"), Rating: rating, HotelID: hotelID})
}

func loadExperience(g *graph.Graph, r row) error {
	id, err := r.requiredInt("id")
	if err != nil {
		return err
	}
	expID, err := r.requiredInt("experience_id")
	if err != nil {
		return err
	}
	return g.AddNode(graph.NodeID(id), graph.Experience{
		Name:         r.cell("name"),
		ExperienceID: expID,
		Description:  r.cell("description"),
	})
}

func loadLocation(g *graph.Graph, r row) error {
	id, err := r.requiredInt("id")
	if err != nil {
		return err
	}
	locID, ok, err := r.optionalInt("location_id")
	if err != nil {
		return err
	}
	if !ok {
		locID = id
	}
	return g.AddNode(graph.NodeID(id), graph.Location{Name: r.cell("name"), LocationID: locID})
}

func loadUser(g *graph.Graph, r row) error {
	id, err := r.requiredInt("id")
	if err != nil {
		return err
	}
	return g.AddNode(graph.NodeID(id), graph.User{Name: r.cell("name"), Email: r.cell("email")})
}

func edgeLoader(kind graph.RelationKind) func(*graph.Graph, row) error {
	return func(g *graph.Graph, r row) error {
		u, err := r.requiredInt("source")
		if err != nil {
			return err
		}
		v, err := r.requiredInt("target")
		if err != nil {
			return err
		}
		rating, err := r.optionalFloat("rating")
		if err != nil {
			return err
		}
		return g.AddEdge(graph.NodeID(u), graph.NodeID(v), kind, rating)
	}
}
