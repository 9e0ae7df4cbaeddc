package event

import (
	"context"
	"time"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/cursor"
)

// Topics published by a document session.
const (
	TopicDocumentChanged Topic = "document.changed"
	TopicNodeSelected    Topic = "node.selected"
)

// Event is a notification about a document.
type Event struct {
	Topic     Topic
	TextID    cdl.TextID
	Cursor    cursor.Cursor
	Timestamp time.Time

	// Payload carries operation-specific data, such as the name of the
	// operation that changed the document.
	Payload any
}

// New creates an event stamped with the current time.
func New(t Topic, id cdl.TextID, c cursor.Cursor, payload any) Event {
	return Event{
		Topic:     t,
		TextID:    id,
		Cursor:    c,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for views that must redraw before anything else.
	PriorityCritical Priority = 0

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for logging handlers that run last.
	PriorityLow Priority = 300
)

// HandlerFunc handles an event.
type HandlerFunc func(ctx context.Context, ev Event) error

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, recovered any)

// ErrorHandler is called when a handler returns an error.
type ErrorHandler func(err *HandlerError)

// Stats reports bus counters.
type Stats struct {
	EventsPublished  uint64
	HandlersExecuted uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
	Subscriptions    int
}
