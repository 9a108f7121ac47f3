package ws

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/eventbus"
)

const (
	resubscribeMinDelay = 500 * time.Millisecond
	resubscribeMaxDelay = 30 * time.Second
)

// Relay copies every bus message into the Hub, in bus order. When the
// transport drops the subscription it resubscribes with growing delays;
// messages published in between are not replayed.
type Relay struct {
	bus    eventbus.Bus
	hub    *Hub
	logger *slog.Logger
}

func NewRelay(bus eventbus.Bus, hub *Hub, logger *slog.Logger) *Relay {
	return &Relay{bus: bus, hub: hub, logger: logger.With("component", "ws_relay")}
}

// Run blocks until ctx is done or the bus is closed.
func (r *Relay) Run(ctx context.Context) {
	delay := resubscribeMinDelay

	for {
		messages, err := r.bus.Subscribe(ctx)
		if err == nil {
			delay = resubscribeMinDelay
			r.pump(messages)
		} else {
			r.logger.WarnContext(ctx, "bus subscription failed", "error", err, "retry_in", delay)
		}

		if ctx.Err() != nil || errors.Is(r.bus.Ping(ctx), eventbus.ErrBusClosed) {
			r.logger.InfoContext(context.WithoutCancel(ctx), "relay stopped")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
			delay = min(delay*2, resubscribeMaxDelay)
		}
	}
}

func (r *Relay) pump(messages <-chan []byte) {
	for msg := range messages {
		r.hub.Deliver(msg)
	}
}
