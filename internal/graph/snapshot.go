// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package graph

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot is an immutable published graph version.
type Snapshot struct {
	Graph    *Graph
	Version  uint64
	LoadedAt time.Time
	// Source describes where the graph was loaded from.
	Source string
}

// Holder publishes the current Snapshot. Readers never block; Swap is the
// only writer.
type Holder struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes Swap so versions stay monotonic
}

// NewHolder creates an empty holder. Current returns nil until the first Swap.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the published snapshot, or nil if none was published.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Swap freezes g and publishes it as the next version.
func (h *Holder) Swap(g *Graph, source string) *Snapshot {
	g.Freeze()

	h.mu.Lock()
	defer h.mu.Unlock()

	var version uint64 = 1
	if prev := h.current.Load(); prev != nil {
		version = prev.Version + 1
	}
	snap := &Snapshot{
		Graph:    g,
		Version:  version,
		LoadedAt: time.Now(),
		Source:   source,
	}
	h.current.Store(snap)
	return snap
}
