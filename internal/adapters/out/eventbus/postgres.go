package eventbus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 10 * time.Millisecond
	listenerMaxReconnect = time.Minute

	// NOTIFY payloads are limited to just under 8000 bytes by the server.
	maxNotifyPayload = 7999
)

var ErrPayloadTooLarge = errors.New("event payload exceeds the NOTIFY limit")

// PostgresBus uses LISTEN/NOTIFY on one channel. Publishing goes through a
// regular connection pool; every subscription owns a pq.Listener which
// reconnects by itself.
type PostgresBus struct {
	dsn     string
	channel string
	db      *sql.DB
	logger  *slog.Logger

	mu        sync.Mutex
	listeners map[*pq.Listener]struct{}
	closed    bool
}

func NewPostgresBus(ctx context.Context, dsn, channel string, logger *slog.Logger) (*PostgresBus, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open notify pool: %w", err)
	}

	b := &PostgresBus{
		dsn:       dsn,
		channel:   channel,
		db:        db,
		logger:    logger.With("component", "postgres_bus"),
		listeners: make(map[*pq.Listener]struct{}),
	}

	// An unreachable server leaves the bus degraded; the pool dials again on use.
	if err = db.PingContext(ctx); err != nil {
		b.logger.WarnContext(ctx, "postgres notify unreachable, starting degraded", "error", err)
	}
	return b, nil
}

func (b *PostgresBus) Publish(ctx context.Context, payload []byte) error {
	if b.isClosed() {
		return ErrBusClosed
	}
	if len(payload) > maxNotifyPayload {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	if _, err := b.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", b.channel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", b.channel, err)
	}
	return nil
}

func (b *PostgresBus) Subscribe(ctx context.Context) (<-chan []byte, error) {
	if b.isClosed() {
		return nil, ErrBusClosed
	}

	listener := pq.NewListener(b.dsn, listenerMinReconnect, listenerMaxReconnect,
		func(ev pq.ListenerEventType, err error) {
			switch ev {
			case pq.ListenerEventDisconnected:
				b.logger.Warn("notify listener disconnected", "channel", b.channel, "error", err)
			case pq.ListenerEventReconnected:
				// Notifications sent while disconnected are gone.
				b.logger.Info("notify listener reconnected", "channel", b.channel)
			case pq.ListenerEventConnectionAttemptFailed:
				b.logger.Warn("notify listener connection attempt failed", "channel", b.channel, "error", err)
			case pq.ListenerEventConnected:
			}
		})
	b.mu.Lock()
	b.listeners[listener] = struct{}{}
	b.mu.Unlock()

	// Listen waits for a connection while the server is down; cancelling ctx
	// or closing the bus releases it.
	listening := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			b.release(listener)
		case <-listening:
		}
	}()
	err := listener.Listen(b.channel)
	close(listening)
	if err != nil {
		b.release(listener)
		return nil, fmt.Errorf("listen %s: %w", b.channel, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer b.release(listener)

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// nil marks a re-established connection.
				if n == nil {
					continue
				}
				select {
				case out <- []byte(n.Extra):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (b *PostgresBus) release(listener *pq.Listener) {
	b.mu.Lock()
	_, owned := b.listeners[listener]
	delete(b.listeners, listener)
	b.mu.Unlock()

	if owned {
		_ = listener.Close()
	}
}

func (b *PostgresBus) Ping(ctx context.Context) error {
	if b.isClosed() {
		return ErrBusClosed
	}
	return b.db.PingContext(ctx)
}

// Reconnect drops idle pool connections so the next publish dials afresh.
// Listeners reconnect on their own.
func (b *PostgresBus) Reconnect(ctx context.Context) error {
	if b.isClosed() {
		return ErrBusClosed
	}
	b.db.SetMaxIdleConns(0)
	b.db.SetMaxIdleConns(2)
	return b.db.PingContext(ctx)
}

func (b *PostgresBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	listeners := b.listeners
	b.listeners = make(map[*pq.Listener]struct{})
	b.mu.Unlock()

	var err error
	for l := range listeners {
		err = errors.Join(err, l.Close())
	}
	return errors.Join(err, b.db.Close())
}

func (b *PostgresBus) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
