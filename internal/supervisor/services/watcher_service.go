// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package services

import (
	"context"
	"errors"
	"fmt"
)

// Runner is a blocking component that stops when ctx is done.
// *reload.Watcher implements it.
type Runner interface {
	Run(ctx context.Context) error
}

// WatcherService supervises the data-directory watcher. A watcher that
// fails (for example because the directory was removed) is restarted with
// suture's backoff.
type WatcherService struct {
	watcher Runner
	name    string
}

// NewWatcherService creates the service.
func NewWatcherService(watcher Runner) *WatcherService {
	return &WatcherService{watcher: watcher, name: "dataset-watcher"}
}

// Serve implements suture.Service.
func (s *WatcherService) Serve(ctx context.Context) error {
	err := s.watcher.Run(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("dataset watcher: %w", err)
}

// String implements fmt.Stringer for suture's logs.
func (s *WatcherService) String() string {
	return s.name
}
