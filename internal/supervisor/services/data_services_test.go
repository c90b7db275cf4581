// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/reload"
)

// staticSource returns a one-hotel graph on every load.
type staticSource struct {
	loads atomic.Int32
}

func (s *staticSource) Load(context.Context) (*graph.Graph, error) {
	s.loads.Add(1)
	g := graph.New()
	if err := g.AddNode(1, graph.Hotel{Name: "Sea", HotelID: 1}); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *staticSource) String() string { return "static" }

type countingRequester struct {
	mu      sync.Mutex
	reasons []string
}

func (c *countingRequester) RequestReload(_ context.Context, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reasons = append(c.reasons, reason)
	return nil
}

func (c *countingRequester) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reasons)
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestServices_Interface(t *testing.T) {
	var _ suture.Service = (*ReloadService)(nil)
	var _ suture.Service = (*WatcherService)(nil)
	var _ suture.Service = (*RefreshService)(nil)
	var _ ReloadConsumer = (*reload.Bus)(nil)
	var _ Runner = (*reload.Watcher)(nil)
}

// --- Test: ReloadService ---

func TestReloadService_AppliesBusRequests(t *testing.T) {
	t.Parallel()

	src := &staticSource{}
	holder := graph.NewHolder()
	reloader := reload.NewReloader(src, holder, reload.DefaultBreakerConfig(), zerolog.Nop())
	bus := reload.NewBus(zerolog.Nop(), nil)
	defer func() { _ = bus.Close() }()

	svc := NewReloadService(bus, reloader)
	if svc.String() != "reload-consumer" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// Publishing before the consumer subscribes drops the message, so retry.
	deadline := time.Now().Add(2 * time.Second)
	for holder.Current() == nil {
		if time.Now().After(deadline) {
			t.Fatal("reload request was never applied")
		}
		if err := bus.RequestReload(ctx, "test"); err != nil {
			t.Fatalf("RequestReload() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if holder.Current().Source != "static" {
		t.Errorf("snapshot source = %q", holder.Current().Source)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReloadService did not stop")
	}
}

// --- Test: WatcherService ---

func TestWatcherService_Serve(t *testing.T) {
	t.Parallel()

	boom := errors.New("directory removed")
	svc := NewWatcherService(runnerFunc(func(context.Context) error { return boom }))
	if err := svc.Serve(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Serve() = %v, want wrapped %v", err, boom)
	}

	svc = NewWatcherService(runnerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if svc.String() != "dataset-watcher" {
		t.Errorf("String() = %q", svc.String())
	}
}

// --- Test: RefreshService ---

func TestRefreshService_Ticks(t *testing.T) {
	t.Parallel()

	req := &countingRequester{}
	svc := NewRefreshService(req, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if req.count() < 2 {
		t.Errorf("got %d scheduled reloads, want at least 2", req.count())
	}
	if req.reasons[0] != "scheduled" {
		t.Errorf("reason = %q", req.reasons[0])
	}
}

func TestNewRefreshService_DefaultInterval(t *testing.T) {
	t.Parallel()

	if svc := NewRefreshService(&countingRequester{}, 0, zerolog.Nop()); svc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", svc.interval)
	}
}
