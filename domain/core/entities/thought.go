package entities

import (
	"time"
	"unicode/utf8"

	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
)

// Thought is a raw, timestamped free-text note.
// Content may be replaced wholesale; the timestamp never changes after creation.
type Thought struct {
	id        valueobjects.ThoughtID
	content   string
	timestamp time.Time

	events []events.DomainEvent
}

// NewThought records a new thought stamped with the current time
func NewThought(content string) *Thought {
	now := time.Now()
	t := &Thought{
		id:        valueobjects.NewThoughtID(),
		content:   content,
		timestamp: now,
	}
	t.addEvent(events.NewThoughtCreated(t.id.String(), utf8.RuneCountInString(content), now))
	return t
}

// NewTransientThought builds a thought that is only used as extraction input
// and is never persisted, so it raises no events
func NewTransientThought(id valueobjects.ThoughtID, content string, timestamp time.Time) *Thought {
	return &Thought{id: id, content: content, timestamp: timestamp}
}

// ReconstructThought rebuilds a thought from stored data
func ReconstructThought(id valueobjects.ThoughtID, content string, timestamp time.Time) *Thought {
	return &Thought{id: id, content: content, timestamp: timestamp}
}

// ID returns the thought's identifier
func (t *Thought) ID() valueobjects.ThoughtID {
	return t.id
}

// Content returns the thought's text
func (t *Thought) Content() string {
	return t.content
}

// Timestamp returns when the thought was recorded
func (t *Thought) Timestamp() time.Time {
	return t.timestamp
}

// ReplaceContent swaps the text of the thought
func (t *Thought) ReplaceContent(content string) {
	t.content = content
	t.addEvent(events.NewThoughtUpdated(t.id.String(), utf8.RuneCountInString(content), time.Now()))
}

// GetUncommittedEvents returns events raised since the last commit
func (t *Thought) GetUncommittedEvents() []events.DomainEvent {
	return t.events
}

// MarkEventsAsCommitted clears the pending events
func (t *Thought) MarkEventsAsCommitted() {
	t.events = nil
}

func (t *Thought) addEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}
