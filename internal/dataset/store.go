// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package dataset

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/staygraph/internal/graph"
)

// Key layout:
//
//	snapshot:latest              -> uint64 version (big endian)
//	snapshot:<v>:meta            -> SnapshotMeta
//	snapshot:<v>:node:<id>       -> nodeRecord
//	snapshot:<v>:edge:<u>:<v>    -> edgeRecord
const (
	keyLatest      = "snapshot:latest"
	keySnapshotFmt = "snapshot:%020d:"
)

// SnapshotMeta describes one stored graph version.
type SnapshotMeta struct {
	Version   uint64    `json:"version"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
}

type nodeRecord struct {
	ID         int64             `json:"id"`
	Type       string            `json:"type"`
	Hotel      *graph.Hotel      `json:"hotel,omitempty"`
	Experience *graph.Experience `json:"experience,omitempty"`
	Location   *graph.Location   `json:"location,omitempty"`
	User       *graph.User       `json:"user,omitempty"`
}

type edgeRecord struct {
	U      int64              `json:"u"`
	V      int64              `json:"v"`
	Kind   graph.RelationKind `json:"kind"`
	Rating *float64           `json:"rating,omitempty"`
}

// SnapshotStore persists validated graphs in BadgerDB. It implements Source
// by loading the latest stored version.
type SnapshotStore struct {
	db     *badger.DB
	path   string
	ownsDB bool
}

// OpenSnapshotStore opens (or creates) a store at path. An empty path opens
// an in-memory store.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &SnapshotStore{db: db, path: path, ownsDB: true}, nil
}

// NewSnapshotStore wraps an already opened database.
func NewSnapshotStore(db *badger.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Close closes the database if the store opened it.
func (s *SnapshotStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// String implements Source.
func (s *SnapshotStore) String() string {
	if s.path == "" {
		return "badger:memory"
	}
	return "badger:" + s.path
}

func snapshotPrefix(version uint64) string {
	return fmt.Sprintf(keySnapshotFmt, version)
}

// Save writes g as the next version and makes it the latest. Records are
// written with a batch; the version only becomes visible once its metadata
// and the latest pointer are committed together.
func (s *SnapshotStore) Save(ctx context.Context, g *graph.Graph, source string) (SnapshotMeta, error) {
	latest, err := s.latestVersion()
	if err != nil && !errors.Is(err, ErrNoSnapshot) {
		return SnapshotMeta{}, err
	}
	meta := SnapshotMeta{
		Version:   latest + 1,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Nodes:     g.Len(),
		Edges:     g.EdgeCount(),
	}
	prefix := snapshotPrefix(meta.Version)

	// Clear records left behind by an earlier save that never committed.
	if err := s.db.DropPrefix([]byte(prefix)); err != nil {
		return SnapshotMeta{}, fmt.Errorf("clear snapshot %d: %w", meta.Version, err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, id := range g.NodeIDs() {
		if err := ctx.Err(); err != nil {
			return SnapshotMeta{}, err
		}
		n, _ := g.Node(id)
		data, err := json.Marshal(toNodeRecord(n))
		if err != nil {
			return SnapshotMeta{}, fmt.Errorf("marshal node %d: %w", id, err)
		}
		if err := wb.Set([]byte(fmt.Sprintf("%snode:%020d", prefix, id)), data); err != nil {
			return SnapshotMeta{}, fmt.Errorf("write node %d: %w", id, err)
		}
	}
	for _, e := range g.Edges() {
		rec := edgeRecord{U: int64(e.U), V: int64(e.V), Kind: e.Kind}
		if e.HasRating {
			r := e.Rating
			rec.Rating = &r
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return SnapshotMeta{}, fmt.Errorf("marshal edge %d-%d: %w", e.U, e.V, err)
		}
		if err := wb.Set([]byte(fmt.Sprintf("%sedge:%020d:%020d", prefix, e.U, e.V)), data); err != nil {
			return SnapshotMeta{}, fmt.Errorf("write edge %d-%d: %w", e.U, e.V, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return SnapshotMeta{}, fmt.Errorf("flush snapshot: %w", err)
	}

	metaData, err := json.Marshal(meta)
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("marshal meta: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(prefix+"meta"), metaData); err != nil {
			return fmt.Errorf("set meta: %w", err)
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], meta.Version)
		if err := txn.Set([]byte(keyLatest), buf[:]); err != nil {
			return fmt.Errorf("set latest: %w", err)
		}
		return nil
	})
	if err != nil {
		return SnapshotMeta{}, err
	}
	return meta, nil
}

func (s *SnapshotStore) latestVersion() (uint64, error) {
	var version uint64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLatest))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("get latest: %w", err)
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt latest pointer (%d bytes)", len(val))
			}
			version = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	return version, err
}

// Latest returns metadata of the newest stored version.
func (s *SnapshotStore) Latest() (SnapshotMeta, error) {
	v, err := s.latestVersion()
	if err != nil {
		return SnapshotMeta{}, err
	}
	return s.meta(v)
}

func (s *SnapshotStore) meta(version uint64) (SnapshotMeta, error) {
	var meta SnapshotMeta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotPrefix(version) + "meta"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("snapshot %d: %w", version, graph.ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	return meta, err
}

// List returns metadata of every committed version, oldest first.
func (s *SnapshotStore) List() ([]SnapshotMeta, error) {
	var out []SnapshotMeta
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte("snapshot:0")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			if len(key) < 4 || string(key[len(key)-4:]) != "meta" {
				continue
			}
			var meta SnapshotMeta
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return err
			}
			out = append(out, meta)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

// Load implements Source: it rebuilds the latest version.
func (s *SnapshotStore) Load(ctx context.Context) (*graph.Graph, error) {
	v, err := s.latestVersion()
	if err != nil {
		return nil, err
	}
	return s.LoadVersion(ctx, v)
}

// LoadVersion rebuilds a specific stored version. Records go through the
// same validation as any other source.
func (s *SnapshotStore) LoadVersion(ctx context.Context, version uint64) (*graph.Graph, error) {
	if _, err := s.meta(version); err != nil {
		return nil, err
	}
	prefix := snapshotPrefix(version)
	g := graph.New()

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		nodePrefix := []byte(prefix + "node:")
		for it.Seek(nodePrefix); it.ValidForPrefix(nodePrefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec nodeRecord
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); err != nil {
				return fmt.Errorf("decode node: %w", err)
			}
			attrs, err := rec.attributes()
			if err != nil {
				return err
			}
			if err := g.AddNode(graph.NodeID(rec.ID), attrs); err != nil {
				return err
			}
		}

		edgePrefix := []byte(prefix + "edge:")
		for it.Seek(edgePrefix); it.ValidForPrefix(edgePrefix); it.Next() {
			var rec edgeRecord
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); err != nil {
				return fmt.Errorf("decode edge: %w", err)
			}
			if err := g.AddEdge(graph.NodeID(rec.U), graph.NodeID(rec.V), rec.Kind, rec.Rating); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot %d: %w", version, err)
	}
	return g, nil
}

// Prune deletes all but the newest keep versions and returns how many were
// removed.
func (s *SnapshotStore) Prune(keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	metas, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(metas) <= keep {
		return 0, nil
	}
	removed := 0
	for _, m := range metas[:len(metas)-keep] {
		if err := s.db.DropPrefix([]byte(snapshotPrefix(m.Version))); err != nil {
			return removed, fmt.Errorf("drop snapshot %d: %w", m.Version, err)
		}
		removed++
	}
	return removed, nil
}

func toNodeRecord(n graph.Node) nodeRecord {
	rec := nodeRecord{ID: int64(n.ID), Type: n.Type().String()}
	switch a := n.Attrs.(type) {
	case graph.Hotel:
		rec.Hotel = &a
	case graph.Experience:
		rec.Experience = &a
	case graph.Location:
		rec.Location = &a
	case graph.User:
		rec.User = &a
	}
	return rec
}

func (r nodeRecord) attributes() (graph.Attributes, error) {
	switch {
	case r.Hotel != nil:
		return *r.Hotel, nil
	case r.Experience != nil:
		return *r.Experience, nil
	case r.Location != nil:
		return *r.Location, nil
	case r.User != nil:
		return *r.User, nil
	default:
		return nil, &graph.ValidationError{Op: "decode", Reason: fmt.Sprintf("node %d has no %s attributes", r.ID, r.Type)}
	}
}
