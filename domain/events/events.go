package events

import (
	"time"
)

// Event types
const (
	TypeThoughtCreated       = "thought.created"
	TypeThoughtUpdated       = "thought.updated"
	TypeThoughtDeleted       = "thought.deleted"
	TypeThoughtsCleared      = "thought.cleared_for_date"
	TypeTasksExtracted       = "tasks.extracted"
	TypeTaskCreated          = "task.created"
	TypeTaskUpdated          = "task.updated"
	TypeTaskCompletionToggle = "task.completion_toggled"
	TypeTaskDeleted          = "task.deleted"
)

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(aggregateID, eventType string, at time.Time) BaseEvent {
	return BaseEvent{AggregateID: aggregateID, EventType: eventType, Timestamp: at}
}

// Thought events

// ThoughtCreated is raised when a new thought is recorded
type ThoughtCreated struct {
	BaseEvent
	ThoughtID string `json:"thought_id"`
	Length    int    `json:"length"`
}

// NewThoughtCreated creates a ThoughtCreated event
func NewThoughtCreated(thoughtID string, length int, at time.Time) ThoughtCreated {
	return ThoughtCreated{
		BaseEvent: newBase(thoughtID, TypeThoughtCreated, at),
		ThoughtID: thoughtID,
		Length:    length,
	}
}

// ThoughtUpdated is raised when a thought's content is replaced
type ThoughtUpdated struct {
	BaseEvent
	ThoughtID string `json:"thought_id"`
	Length    int    `json:"length"`
}

// NewThoughtUpdated creates a ThoughtUpdated event
func NewThoughtUpdated(thoughtID string, length int, at time.Time) ThoughtUpdated {
	return ThoughtUpdated{
		BaseEvent: newBase(thoughtID, TypeThoughtUpdated, at),
		ThoughtID: thoughtID,
		Length:    length,
	}
}

// ThoughtDeleted is raised when a thought is removed. Tasks derived from it
// are left in place.
type ThoughtDeleted struct {
	BaseEvent
	ThoughtID string `json:"thought_id"`
}

// NewThoughtDeleted creates a ThoughtDeleted event
func NewThoughtDeleted(thoughtID string, at time.Time) ThoughtDeleted {
	return ThoughtDeleted{
		BaseEvent: newBase(thoughtID, TypeThoughtDeleted, at),
		ThoughtID: thoughtID,
	}
}

// ThoughtsCleared is raised when all thoughts of a day are removed
type ThoughtsCleared struct {
	BaseEvent
	Date         string `json:"date"`
	DeletedCount int    `json:"deleted_count"`
}

// NewThoughtsCleared creates a ThoughtsCleared event
func NewThoughtsCleared(date string, deleted int, at time.Time) ThoughtsCleared {
	return ThoughtsCleared{
		BaseEvent:    newBase(date, TypeThoughtsCleared, at),
		Date:         date,
		DeletedCount: deleted,
	}
}

// TasksExtracted is raised when task drafts were derived from a thought
type TasksExtracted struct {
	BaseEvent
	ThoughtID    string `json:"thought_id"`
	TaskCount    int    `json:"task_count"`
	UsedExternal bool   `json:"used_external"`
}

// NewTasksExtracted creates a TasksExtracted event
func NewTasksExtracted(thoughtID string, count int, usedExternal bool, at time.Time) TasksExtracted {
	return TasksExtracted{
		BaseEvent:    newBase(thoughtID, TypeTasksExtracted, at),
		ThoughtID:    thoughtID,
		TaskCount:    count,
		UsedExternal: usedExternal,
	}
}

// Task events

// TaskCreated is raised when a task is persisted
type TaskCreated struct {
	BaseEvent
	TaskID    string  `json:"task_id"`
	Title     string  `json:"title"`
	ThoughtID *string `json:"thought_id"`
}

// NewTaskCreated creates a TaskCreated event
func NewTaskCreated(taskID, title string, thoughtID *string, at time.Time) TaskCreated {
	return TaskCreated{
		BaseEvent: newBase(taskID, TypeTaskCreated, at),
		TaskID:    taskID,
		Title:     title,
		ThoughtID: thoughtID,
	}
}

// TaskUpdated is raised when task fields change
type TaskUpdated struct {
	BaseEvent
	TaskID        string   `json:"task_id"`
	ChangedFields []string `json:"changed_fields"`
}

// NewTaskUpdated creates a TaskUpdated event
func NewTaskUpdated(taskID string, changed []string, at time.Time) TaskUpdated {
	return TaskUpdated{
		BaseEvent:     newBase(taskID, TypeTaskUpdated, at),
		TaskID:        taskID,
		ChangedFields: changed,
	}
}

// TaskCompletionToggled is raised when a task is completed or reopened
type TaskCompletionToggled struct {
	BaseEvent
	TaskID      string `json:"task_id"`
	IsCompleted bool   `json:"is_completed"`
}

// NewTaskCompletionToggled creates a TaskCompletionToggled event
func NewTaskCompletionToggled(taskID string, completed bool, at time.Time) TaskCompletionToggled {
	return TaskCompletionToggled{
		BaseEvent:   newBase(taskID, TypeTaskCompletionToggle, at),
		TaskID:      taskID,
		IsCompleted: completed,
	}
}

// TaskDeleted is raised when a task is removed
type TaskDeleted struct {
	BaseEvent
	TaskID string `json:"task_id"`
}

// NewTaskDeleted creates a TaskDeleted event
func NewTaskDeleted(taskID string, at time.Time) TaskDeleted {
	return TaskDeleted{
		BaseEvent: newBase(taskID, TypeTaskDeleted, at),
		TaskID:    taskID,
	}
}
