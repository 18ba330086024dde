package entities

import (
	"time"

	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
)

// Task is an actionable item, optionally traced back to the thought it came from.
// The thought reference is provenance only: the task does not own or follow it.
type Task struct {
	id          valueobjects.TaskID
	title       string
	description string
	createdAt   time.Time
	dueDate     *time.Time
	isCompleted bool
	thoughtID   valueobjects.ThoughtID

	events []events.DomainEvent
}

// NewTask creates an open task stamped with the current time
func NewTask(title, description string, dueDate *time.Time, thoughtID valueobjects.ThoughtID) *Task {
	task := &Task{
		id:          valueobjects.NewTaskID(),
		title:       title,
		description: description,
		createdAt:   time.Now(),
		dueDate:     copyTime(dueDate),
		thoughtID:   thoughtID,
	}
	task.addEvent(events.NewTaskCreated(task.id.String(), title, thoughtID.Ptr(), task.createdAt))
	return task
}

// NewDraftTask creates a task derived from a thought. It shares the thought's
// timestamp and points back at it.
func NewDraftTask(title string, thought *Thought) *Task {
	return &Task{
		id:        valueobjects.NewTaskID(),
		title:     title,
		createdAt: thought.Timestamp(),
		thoughtID: thought.ID(),
	}
}

// ReconstructTask rebuilds a task from stored data
func ReconstructTask(
	id valueobjects.TaskID,
	title, description string,
	createdAt time.Time,
	dueDate *time.Time,
	isCompleted bool,
	thoughtID valueobjects.ThoughtID,
) *Task {
	return &Task{
		id:          id,
		title:       title,
		description: description,
		createdAt:   createdAt,
		dueDate:     copyTime(dueDate),
		isCompleted: isCompleted,
		thoughtID:   thoughtID,
	}
}

// ID returns the task's identifier
func (t *Task) ID() valueobjects.TaskID { return t.id }

// Title returns the task title
func (t *Task) Title() string { return t.title }

// Description returns the task description
func (t *Task) Description() string { return t.description }

// CreatedAt returns the creation time
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// DueDate returns the due date, nil when unset
func (t *Task) DueDate() *time.Time { return copyTime(t.dueDate) }

// IsCompleted reports whether the task is done
func (t *Task) IsCompleted() bool { return t.isCompleted }

// ThoughtID returns the originating thought, zero when the task has none
func (t *Task) ThoughtID() valueobjects.ThoughtID { return t.thoughtID }

// TaskChanges describes a partial update; nil fields are left untouched
type TaskChanges struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	IsCompleted *bool
}

// Apply updates the fields present in changes and reports which ones changed
func (t *Task) Apply(changes TaskChanges) []string {
	var changed []string

	if changes.Title != nil && *changes.Title != t.title {
		t.title = *changes.Title
		changed = append(changed, "title")
	}
	if changes.Description != nil && *changes.Description != t.description {
		t.description = *changes.Description
		changed = append(changed, "description")
	}
	if changes.DueDate != nil && (t.dueDate == nil || !t.dueDate.Equal(*changes.DueDate)) {
		t.dueDate = copyTime(changes.DueDate)
		changed = append(changed, "due_date")
	}
	if changes.IsCompleted != nil && *changes.IsCompleted != t.isCompleted {
		t.isCompleted = *changes.IsCompleted
		changed = append(changed, "is_completed")
	}

	if len(changed) > 0 {
		t.addEvent(events.NewTaskUpdated(t.id.String(), changed, time.Now()))
	}
	return changed
}

// ToggleCompletion flips the completion flag
func (t *Task) ToggleCompletion() {
	t.isCompleted = !t.isCompleted
	t.addEvent(events.NewTaskCompletionToggled(t.id.String(), t.isCompleted, time.Now()))
}

// GetUncommittedEvents returns events raised since the last commit
func (t *Task) GetUncommittedEvents() []events.DomainEvent {
	return t.events
}

// MarkEventsAsCommitted clears the pending events
func (t *Task) MarkEventsAsCommitted() {
	t.events = nil
}

func (t *Task) addEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
