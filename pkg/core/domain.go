package core

import "fmt"

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventDelete EventType = "DELETE"
	EventReload EventType = "RELOAD"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
