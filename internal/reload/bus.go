// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package reload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Topic carries reload requests.
const Topic = "graph.reload"

// Request is the payload of a reload message.
type Request struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

// Requester asks for a reload without waiting for it.
type Requester interface {
	RequestReload(ctx context.Context, reason string) error
}

// reloadFunc is the subset of Reloader the bus needs.
type reloadFunc func(ctx context.Context, reason string) error

// Bus moves reload requests from publishers (HTTP, file watcher) to the
// single consumer that performs reloads. Requests that arrive while a reload
// is running collapse into one follow-up reload.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus creates an in-process bus.
//
//nolint:gocritic // zerolog.Logger is passed by value by design
func NewBus(logger zerolog.Logger, wmLogger watermill.LoggerAdapter) *Bus {
	if wmLogger == nil {
		wmLogger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            16,
			BlockPublishUntilSubscriberAck: true,
		}, wmLogger),
		logger: logger.With().Str("component", "reload-bus").Logger(),
	}
}

// RequestReload implements Requester. It returns once the consumer has
// accepted the request, not when the reload finishes.
func (b *Bus) RequestReload(ctx context.Context, reason string) error {
	payload, err := json.Marshal(Request{Reason: reason, RequestedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal reload request: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("publish reload request: %w", err)
	}
	b.logger.Debug().Str("reason", reason).Str("message_id", msg.UUID).Msg("Reload requested")
	return nil
}

// Subscribe returns the raw request stream. Serve is the usual consumer.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

// Serve consumes requests until ctx is done, calling reload once per batch
// of pending requests.
func (b *Bus) Serve(ctx context.Context, reloader *Reloader) error {
	return b.serve(ctx, func(ctx context.Context, reason string) error {
		_, err := reloader.Reload(ctx, reason)
		return err
	})
}

func (b *Bus) serve(ctx context.Context, reload reloadFunc) error {
	messages, err := b.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", Topic, err)
	}
	return b.consume(ctx, messages, reload)
}

func (b *Bus) consume(ctx context.Context, messages <-chan *message.Message, reload reloadFunc) error {
	// At most one reload waits behind the running one; extra requests
	// merge into it.
	pending := make(chan string, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(pending)
		for {
			select {
			case <-gctx.Done():
				return nil
			case msg, ok := <-messages:
				if !ok {
					return nil
				}
				reason := decodeReason(msg)
				msg.Ack()
				select {
				case pending <- reason:
				default:
					b.logger.Debug().Str("reason", reason).Msg("Reload already pending, request merged")
				}
			}
		}
	})
	g.Go(func() error {
		for reason := range pending {
			if err := reload(gctx, reason); err != nil && !errors.Is(err, context.Canceled) {
				b.logger.Warn().Err(err).Str("reason", reason).Msg("Requested reload failed")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func decodeReason(msg *message.Message) string {
	var req Request
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.Reason == "" {
		return "unknown"
	}
	return req.Reason
}

// Close shuts the bus down; Serve returns once its channel closes.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
