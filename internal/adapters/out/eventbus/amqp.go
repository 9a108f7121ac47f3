package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	amqpConnectAttempts = 10
	amqpPublishTimeout  = 5 * time.Second
	amqpMaxRetryDelay   = 30 * time.Second
)

var errChannelUnavailable = errors.New("rabbitmq channel not available")

// AMQPBus publishes to a fanout exchange. Every subscription declares its own
// exclusive auto-delete queue bound to the exchange, so each process receives
// every message and nothing is kept once the process goes away.
type AMQPBus struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu     sync.RWMutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// NewAMQPBus dials url with growing delays between attempts and declares the exchange.
// When the broker stays unreachable, or ctx ends first, the bus is returned
// degraded: Publish and Subscribe fail until Reconnect succeeds.
func NewAMQPBus(ctx context.Context, url, exchange string, logger *slog.Logger) (*AMQPBus, error) {
	b := &AMQPBus{
		url:      url,
		exchange: exchange,
		logger:   logger.With("component", "amqp_bus"),
	}

	retryDelay := time.Second
	for attempt := 1; attempt <= amqpConnectAttempts; attempt++ {
		err := b.connect()
		if err == nil {
			b.logger.InfoContext(ctx, "connected to rabbitmq", "exchange", exchange, "attempt", attempt)
			return b, nil
		}

		b.logger.WarnContext(ctx, "rabbitmq connection attempt failed",
			"attempt", attempt, "max_attempts", amqpConnectAttempts, "error", err)
		if attempt == amqpConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			b.logger.WarnContext(ctx, "rabbitmq dialing interrupted, starting degraded", "error", ctx.Err())
			return b, nil
		case <-time.After(retryDelay):
			retryDelay = min(time.Duration(float64(retryDelay)*1.5), amqpMaxRetryDelay)
		}
	}

	b.logger.WarnContext(ctx, "rabbitmq unreachable, starting degraded", "attempts", amqpConnectAttempts)
	return b, nil
}

func (b *AMQPBus) connect() error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(b.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
	}

	b.mu.Lock()
	old := b.conn
	b.conn, b.ch = conn, ch
	b.mu.Unlock()

	if old != nil && !old.IsClosed() {
		_ = old.Close()
	}
	return nil
}

func (b *AMQPBus) Publish(ctx context.Context, payload []byte) error {
	b.mu.RLock()
	ch, closed := b.ch, b.closed
	b.mu.RUnlock()

	if closed {
		return ErrBusClosed
	}
	if ch == nil || ch.IsClosed() {
		return errChannelUnavailable
	}

	publishCtx, cancel := context.WithTimeout(ctx, amqpPublishTimeout)
	defer cancel()

	return ch.PublishWithContext(publishCtx, b.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now(),
	})
}

func (b *AMQPBus) Subscribe(ctx context.Context) (<-chan []byte, error) {
	b.mu.RLock()
	conn, closed := b.conn, b.closed
	b.mu.RUnlock()

	if closed {
		return nil, ErrBusClosed
	}
	if conn == nil || conn.IsClosed() {
		return nil, errChannelUnavailable
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open subscriber channel: %w", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare subscriber queue: %w", err)
	}
	if err = ch.QueueBind(q.Name, "", b.exchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("bind %s to %s: %w", q.Name, b.exchange, err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consume %s: %w", q.Name, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer ch.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					b.logger.WarnContext(ctx, "subscription dropped by broker", "queue", q.Name)
					return
				}
				select {
				case out <- d.Body:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (b *AMQPBus) Ping(_ context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}
	if b.conn == nil || b.conn.IsClosed() || b.ch == nil || b.ch.IsClosed() {
		return errChannelUnavailable
	}
	return nil
}

func (b *AMQPBus) Reconnect(ctx context.Context) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		return ErrBusClosed
	}
	if err := b.connect(); err != nil {
		return err
	}
	b.logger.InfoContext(ctx, "reconnected to rabbitmq", "exchange", b.exchange)
	return nil
}

func (b *AMQPBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var err error
	if b.ch != nil {
		err = errors.Join(err, ignoreClosed(b.ch.Close()))
	}
	if b.conn != nil {
		err = errors.Join(err, ignoreClosed(b.conn.Close()))
	}
	return err
}

func ignoreClosed(err error) error {
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}
