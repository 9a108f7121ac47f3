// Package ws fans bus messages out to live WebSocket subscribers.
//
// The Hub owns the registry of subscribers. The Relay pumps the bus into the
// Hub, and Endpoint upgrades authenticated requests into subscribers.
package ws

import (
	"errors"
	"log/slog"
	"sync"
)

const DefaultQueueSize = 64

var ErrHubClosed = errors.New("hub is closed")

// Handle identifies one subscriber for the lifetime of its connection.
type Handle uint64

type subscriber struct {
	queue chan []byte
}

// Hub is a concurrency-safe registry of subscribers.
//
// Deliver never blocks: each subscriber has a bounded queue, and a subscriber
// whose queue is full is evicted. Eviction and Disconnect close the queue,
// which ends the subscriber's write pump.
type Hub struct {
	mu        sync.RWMutex
	subs      map[Handle]*subscriber
	next      Handle
	queueSize int
	closed    bool
	logger    *slog.Logger
}

func NewHub(queueSize int, logger *slog.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		subs:      make(map[Handle]*subscriber),
		queueSize: queueSize,
		logger:    logger.With("component", "ws_hub"),
	}
}

// Connect registers a subscriber. Messages delivered from now on appear on the
// returned queue, which is closed when the subscriber is removed.
func (h *Hub) Connect() (Handle, <-chan []byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, nil, ErrHubClosed
	}

	h.next++
	handle := h.next
	sub := &subscriber{queue: make(chan []byte, h.queueSize)}
	h.subs[handle] = sub

	return handle, sub.queue, nil
}

// Disconnect removes handle. Unknown and already removed handles are ignored.
func (h *Hub) Disconnect(handle Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(handle)
}

// remove must be called with mu held for writing.
func (h *Hub) remove(handle Handle) bool {
	sub, ok := h.subs[handle]
	if !ok {
		return false
	}
	delete(h.subs, handle)
	close(sub.queue)
	return true
}

// Deliver queues msg for every subscriber and evicts those that cannot keep up.
func (h *Hub) Deliver(msg []byte) {
	var full []Handle

	h.mu.RLock()
	for handle, sub := range h.subs {
		select {
		case sub.queue <- msg:
		default:
			full = append(full, handle)
		}
	}
	h.mu.RUnlock()

	if len(full) == 0 {
		return
	}

	h.mu.Lock()
	for _, handle := range full {
		if h.remove(handle) {
			h.logger.Warn("subscriber evicted, queue full", "handle", handle, "queue_size", h.queueSize)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for handle := range h.subs {
		h.remove(handle)
	}
}
