package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventProjectChanged   EventType = "project_changed"
	EventWorkspaceChanged EventType = "workspace_changed"
)

// Event represents a data change notification pushed to board clients.
type Event struct {
	Type        EventType `json:"type"`
	ProjectID   string    `json:"project_id,omitempty"`   // which project was modified ("" = none/all)
	WorkspaceID string    `json:"workspace_id,omitempty"` // which workspace was modified
	Timestamp   time.Time `json:"timestamp"`
	SequenceID  int64     `json:"sequence_id"` // monotonically increasing, for ordering
}
