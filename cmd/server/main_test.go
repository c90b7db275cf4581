// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staygraph/internal/config"
	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/reload"
)

func writeDataset(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"hotel_nodes.csv":          "id,name,rating,hotel_id\n1,Sea,9,101\n2,Pine,7,102\n",
		"experience_nodes.csv":     "id,name,experience_id\n10,Spa,1\n",
		"location_nodes.csv":       "id,name,location_id\n20,Antalya,100\n",
		"user_nodes.csv":           "id,name,email\n30,Ada,ada@example.com\n",
		"has_experience_edges.csv": "source,target,rating\n1,10,9\n2,10,6\n",
		"stayed_at_edges.csv":      "source,target,rating\n30,2,8\n",
		"likes_edges.csv":          "source,target\n30,10\n",
		"located_in_edges.csv":     "source,target\n1,20\n2,20\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInitData(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	cfg.Data.Encoding = "utf-8"
	writeDataset(t, cfg.Data.Dir)

	data, err := initData(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("initData() error = %v", err)
	}
	defer func() { _ = data.Close() }()

	if snap := data.Holder.Current(); snap == nil || snap.Version != 1 {
		t.Fatalf("initial snapshot = %+v", snap)
	}
	resp, err := data.Engine.Recommend(context.Background(), recommend.Request{
		Preferences: []recommend.Preference{{ExperienceID: 1, Importance: 5}},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].HotelID != 101 {
		t.Errorf("ranking = %+v", resp.Items)
	}
}

func TestInitData_MissingDirectoryIsFatal(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Data.Dir = filepath.Join(t.TempDir(), "absent")

	_, err := initData(context.Background(), cfg, zerolog.Nop())
	if err == nil {
		t.Fatal("initData() with no dataset should fail")
	}
	if errors.Is(err, reload.ErrSourceUnavailable) {
		t.Errorf("first failure should report the load error, got breaker error %v", err)
	}
}

func TestNewHTTPServer(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8123
	srv := newHTTPServer(cfg, http.NotFoundHandler())
	if srv.Addr != "127.0.0.1:8123" {
		t.Errorf("Addr = %q", srv.Addr)
	}
	if srv.ReadTimeout != 15*time.Second || srv.IdleTimeout != 60*time.Second {
		t.Errorf("timeouts = %v/%v", srv.ReadTimeout, srv.IdleTimeout)
	}
}

func TestTreeConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	tc := treeConfig(cfg)
	if tc.FailureThreshold != cfg.Supervisor.FailureThreshold || tc.ShutdownTimeout != cfg.Supervisor.ShutdownTimeout {
		t.Errorf("treeConfig() = %+v", tc)
	}
}
