package events

// Publisher defines the interface for sending change notifications.
// This interface allows for loose coupling and easier testing by depending
// on behavior rather than concrete implementation.
type Publisher interface {
	// Publish queues an event for delivery to subscribers
	Publish(event Event) error
}

// Compile-time verification that *Hub implements Publisher
var _ Publisher = (*Hub)(nil)
