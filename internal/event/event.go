package event

import (
	"time"

	"github.com/google/uuid"
)

// Topic identifies an event type using dot notation.
type Topic string

// Topics published by the application.
const (
	// TopicEntriesChanged fires after any mutation of the entry store.
	TopicEntriesChanged Topic = "entries.changed"

	// TopicHistoryChanged fires after the undo/redo stacks change.
	TopicHistoryChanged Topic = "history.changed"

	// TopicPrefsChanged fires after a display preference changes.
	TopicPrefsChanged Topic = "prefs.changed"
)

// Event is one published notification.
// Events are immutable once created.
type Event struct {
	// Topic is the event type.
	Topic Topic

	// Payload contains the event-specific data, if any.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the module that published the event.
	Source string
}

// New creates an event with fresh metadata.
func New(topic Topic, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
