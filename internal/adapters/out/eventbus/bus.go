// Package eventbus carries published events from the mutation path to the
// fan-out. A bus is one ordered channel of JSON messages with no history:
// a subscriber only receives what is published after it subscribed.
//
// Three transports share the Bus contract:
//
//   - Memory: in-process, for a single instance and for tests
//   - AMQPBus: a RabbitMQ fanout exchange, one exclusive queue per subscriber
//   - PostgresBus: LISTEN/NOTIFY on a single channel
package eventbus

import (
	"context"
	"errors"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is implemented by every transport.
type Bus interface {
	// Publish appends payload to the channel.
	Publish(ctx context.Context, payload []byte) error

	// Subscribe returns messages published from now on, in publish order.
	// The channel is closed when ctx is done, when the bus is closed, or when
	// the transport drops the subscription; callers resubscribe in the last case.
	Subscribe(ctx context.Context) (<-chan []byte, error)

	// Ping reports whether the transport is currently usable.
	Ping(ctx context.Context) error

	// Reconnect re-establishes a degraded transport.
	Reconnect(ctx context.Context) error

	Close() error
}
