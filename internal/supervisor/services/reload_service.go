// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package services

import (
	"context"

	"github.com/tomtom215/staygraph/internal/reload"
)

// ReloadConsumer drains reload requests and applies them. *reload.Bus
// implements it.
type ReloadConsumer interface {
	Serve(ctx context.Context, reloader *reload.Reloader) error
}

// ReloadService runs the reload bus consumer. Suture restarts it if the
// subscription fails; requests published while it is down wait in the bus.
type ReloadService struct {
	consumer ReloadConsumer
	reloader *reload.Reloader
	name     string
}

// NewReloadService creates the service.
func NewReloadService(consumer ReloadConsumer, reloader *reload.Reloader) *ReloadService {
	return &ReloadService{
		consumer: consumer,
		reloader: reloader,
		name:     "reload-consumer",
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	return s.consumer.Serve(ctx, s.reloader)
}

// String implements fmt.Stringer for suture's logs.
func (s *ReloadService) String() string {
	return s.name
}
