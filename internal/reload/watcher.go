// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period after the last file event before a
// reload is requested.
const DefaultDebounce = 2 * time.Second

// Watcher requests a reload when dataset files in a directory change.
type Watcher struct {
	dir       string
	files     map[string]struct{}
	debounce  time.Duration
	requester Requester
	logger    zerolog.Logger
}

// NewWatcher watches dir for changes to the named files. An empty file list
// reacts to every file in dir.
//
//nolint:gocritic // zerolog.Logger is passed by value by design
func NewWatcher(dir string, files []string, debounce time.Duration, requester Requester, logger zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[filepath.Base(f)] = struct{}{}
	}
	return &Watcher{
		dir:       dir,
		files:     set,
		debounce:  debounce,
		requester: requester,
		logger:    logger.With().Str("component", "watcher").Str("dir", dir).Logger(),
	}
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info().Dur("debounce", w.debounce).Msg("Watching dataset directory")

	// Reset discards any pending expiry (Go 1.23 timer semantics), so a burst
	// of events only ever fires once.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var lastFile string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Dataset file changed")
			lastFile = filepath.Base(event.Name)
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.requester.RequestReload(ctx, "file_change:"+lastFile); err != nil {
				w.logger.Warn().Err(err).Msg("Could not request reload")
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	if len(w.files) == 0 {
		return true
	}
	_, ok := w.files[filepath.Base(event.Name)]
	return ok
}
