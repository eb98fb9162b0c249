package events

import (
	"sync/atomic"
	"time"
)

// Metrics tracks hub statistics using atomic operations for thread-safety
type Metrics struct {
	EventsPublished atomic.Int64
	EventsDelivered atomic.Int64
	EventsDropped   atomic.Int64
	Subscribers     atomic.Int32
	StartTime       time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsPublished increments the published counter
func (m *Metrics) IncEventsPublished() {
	m.EventsPublished.Add(1)
}

// IncEventsDelivered increments the delivered counter
func (m *Metrics) IncEventsDelivered() {
	m.EventsDelivered.Add(1)
}

// IncEventsDropped increments the dropped counter
func (m *Metrics) IncEventsDropped() {
	m.EventsDropped.Add(1)
}

// SetSubscribers sets the current subscriber count
func (m *Metrics) SetSubscribers(count int32) {
	m.Subscribers.Store(count)
}

// Snapshot represents a point-in-time view of the hub's counters.
type Snapshot struct {
	EventsPublished int64     `json:"events_published"`
	EventsDelivered int64     `json:"events_delivered"`
	EventsDropped   int64     `json:"events_dropped"`
	Subscribers     int32     `json:"subscribers"`
	UptimeSeconds   float64   `json:"uptime_seconds"`
	StartTime       time.Time `json:"start_time"`
}

// Snapshot returns a consistent-enough copy of the counters for reporting.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		EventsPublished: m.EventsPublished.Load(),
		EventsDelivered: m.EventsDelivered.Load(),
		EventsDropped:   m.EventsDropped.Load(),
		Subscribers:     m.Subscribers.Load(),
		UptimeSeconds:   time.Since(m.StartTime).Seconds(),
		StartTime:       m.StartTime,
	}
}
