package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTemplate EntityType = "template"
	EntityTypeStatus   EntityType = "status"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, month?, payload, timestamp }
type Event struct {
	Type   string     `json:"type"`   // Combined type e.g. "template.created"
	Entity EntityType `json:"entity"` // Entity type e.g. "template"
	// Month is the "YYYY-MM" an event is scoped to; empty means every month
	Month     string      `json:"month,omitempty"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TemplateCreated creates a template.created event
func TemplateCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTemplate, payload)
}

// TemplateUpdated creates a template.updated event
func TemplateUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTemplate, payload)
}

// TemplateDeleted creates a template.deleted event
func TemplateDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTemplate, payload)
}

// StatusUpdated creates a status.updated event scoped to the override's month.
// Template events stay unscoped since a template change can move every month.
func StatusUpdated(year, month int, payload interface{}) Event {
	e := NewEvent(EventTypeUpdated, EntityTypeStatus, payload)
	e.Month = MonthKey(year, month)
	return e
}
