package events

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// subscriber is one connected event stream.
type subscriber struct {
	ch        chan Event
	projectID string // "" = all projects
}

// Hub fans change events out to subscribed clients. Services publish into
// it after successful mutations; the SSE endpoint subscribes per
// connection. Slow subscribers have events dropped rather than blocking
// the publisher.
type Hub struct {
	mu              sync.RWMutex
	subscribers     map[*subscriber]bool
	bufferSize      int
	sequenceCounter atomic.Int64
	metrics         *Metrics
}

// NewHub creates a hub with the given per-subscriber buffer size.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &Hub{
		subscribers: make(map[*subscriber]bool),
		bufferSize:  bufferSize,
		metrics:     NewMetrics(),
	}
}

// Metrics returns the hub's counters.
func (h *Hub) Metrics() *Metrics {
	return h.metrics
}

// Publish stamps the event and delivers it to matching subscribers.
// Never blocks: subscribers with full queues miss the event.
func (h *Hub) Publish(event Event) error {
	event.SequenceID = h.sequenceCounter.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	h.metrics.IncEventsPublished()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		// Deliver if: event has no project scope, subscriber wants all
		// projects, or the scopes match
		if event.ProjectID != "" && sub.projectID != "" && sub.projectID != event.ProjectID {
			continue
		}

		select {
		case sub.ch <- event:
			h.metrics.IncEventsDelivered()
		default:
			h.metrics.IncEventsDropped()
			slog.Warn("subscriber queue full, event dropped", "sequence_id", event.SequenceID)
		}
	}
	return nil
}

// Subscribe registers a new subscriber for events matching projectID
// ("" subscribes to all projects). The returned cancel function must be
// called when the subscriber disconnects.
func (h *Hub) Subscribe(projectID string) (<-chan Event, func()) {
	sub := &subscriber{
		ch:        make(chan Event, h.bufferSize),
		projectID: projectID,
	}

	h.mu.Lock()
	h.subscribers[sub] = true
	count := len(h.subscribers)
	h.mu.Unlock()

	h.metrics.SetSubscribers(int32(count))

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[sub]; ok {
			delete(h.subscribers, sub)
			close(sub.ch)
		}
		count := len(h.subscribers)
		h.mu.Unlock()
		h.metrics.SetSubscribers(int32(count))
	}
	return sub.ch, cancel
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish sends an event through a possibly-nil publisher. Errors are
// logged but not returned (fire-and-forget pattern).
func Publish(pub Publisher, event Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(event); err != nil {
		slog.Error(fmt.Sprintf("failed to publish %s event", event.Type), "error", err)
	}
}
