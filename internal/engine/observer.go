package engine

import "time"

// EventType represents the kind of change an engine reports
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventDataChange  EventType = "data_change"
	EventRowModel    EventType = "row_model"
)

// Event represents a change inside the engine
type Event struct {
	Type      EventType   // Type of event
	TableID   string      // Engine instance id for tracing
	Slice     StateSlice  // State slice that changed (state_change only)
	Replaced  bool        // Slice was overwritten by SetState rather than edited
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific data (row count, model stats)
}

// Observer interface for event subscribers
// Observers are called synchronously, after the change has been applied
type Observer interface {
	OnEvent(event Event)
}
