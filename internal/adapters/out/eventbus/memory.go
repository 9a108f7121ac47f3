package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

const defaultMemoryBuffer = 256

// Memory is an in-process bus. Publish holds the lock while fanning out, so
// every subscriber sees messages in the same order.
//
// A subscriber that stops draining its buffer loses messages instead of
// stalling publishers.
type Memory struct {
	mu     sync.Mutex
	subs   map[uint64]chan []byte
	nextID uint64
	buffer int
	closed bool
	logger *slog.Logger
}

func NewMemory(buffer int, logger *slog.Logger) *Memory {
	if buffer <= 0 {
		buffer = defaultMemoryBuffer
	}
	return &Memory{
		subs:   make(map[uint64]chan []byte),
		buffer: buffer,
		logger: logger.With("component", "memory_bus"),
	}
}

func (m *Memory) Publish(ctx context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrBusClosed
	}

	for id, ch := range m.subs {
		select {
		case ch <- payload:
		default:
			m.logger.WarnContext(ctx, "subscriber buffer full, message dropped", "subscription", id)
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context) (<-chan []byte, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrBusClosed
	}
	id := m.nextID
	m.nextID++
	ch := make(chan []byte, m.buffer)
	m.subs[id] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.unsubscribe(id)
	}()

	return ch, nil
}

func (m *Memory) unsubscribe(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch, ok := m.subs[id]; ok {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *Memory) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrBusClosed
	}
	return nil
}

// Reconnect is a no-op: the in-process bus cannot degrade.
func (m *Memory) Reconnect(ctx context.Context) error {
	return m.Ping(ctx)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
	return nil
}
