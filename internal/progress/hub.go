// Package progress fans fetch progress events out to long-lived
// subscribers such as websocket connections.
//
// Publishing never blocks: each subscriber owns an unbounded queue, so
// a stalled connection cannot slow down a running valuation.
package progress

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event is one progress update of a running valuation.
type Event struct {
	IndexID   uuid.UUID `json:"index_id"`
	Operation string    `json:"operation"` // "spot" or "history"
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

// Hub distributes events to all current subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	closed bool
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber that receives every event
// published from now on. The caller must Close it when done.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		hub:    h,
		events: newQueue[Event](16),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.events.close()
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Publish delivers an event to every subscriber without blocking.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		sub.events.push(e)
	}
}

// SubscriberCount reports how many subscribers are attached.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close detaches and closes all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subs {
		sub.events.close()
		delete(h.subs, sub)
	}
}

// Subscriber is one attached consumer of progress events.
type Subscriber struct {
	hub    *Hub
	events *queue[Event]
}

// Next blocks until an event arrives or the subscription is closed.
func (s *Subscriber) Next() (Event, bool) {
	return s.events.pop()
}

// Close detaches the subscriber from the hub and unblocks Next.
func (s *Subscriber) Close() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s)
	s.hub.mu.Unlock()

	s.events.close()
}
