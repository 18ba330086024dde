package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
)

func TestNewThought(t *testing.T) {
	thought := NewThought("Pick up the dry cleaning")

	assert.False(t, thought.ID().IsZero())
	assert.Equal(t, "Pick up the dry cleaning", thought.Content())
	assert.WithinDuration(t, time.Now(), thought.Timestamp(), time.Second)

	evts := thought.GetUncommittedEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeThoughtCreated, evts[0].GetEventType())
	assert.Equal(t, thought.ID().String(), evts[0].GetAggregateID())

	thought.MarkEventsAsCommitted()
	assert.Empty(t, thought.GetUncommittedEvents())
}

func TestThought_ReplaceContentKeepsTimestamp(t *testing.T) {
	id, _ := valueobjects.NewThoughtIDFromString("t-1")
	ts := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	thought := ReconstructThought(id, "old", ts)

	thought.ReplaceContent("new")

	assert.Equal(t, "new", thought.Content())
	assert.True(t, thought.Timestamp().Equal(ts))
	require.Len(t, thought.GetUncommittedEvents(), 1)
	assert.Equal(t, events.TypeThoughtUpdated, thought.GetUncommittedEvents()[0].GetEventType())
}

func TestNewTask(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	task := NewTask("File taxes", "", &due, valueobjects.ThoughtID{})

	assert.False(t, task.ID().IsZero())
	assert.Equal(t, "File taxes", task.Title())
	assert.False(t, task.IsCompleted())
	assert.True(t, task.ThoughtID().IsZero())
	require.NotNil(t, task.DueDate())
	assert.True(t, task.DueDate().Equal(due))

	// due date is copied, not shared
	due = due.Add(24 * time.Hour)
	assert.False(t, task.DueDate().Equal(due))

	evts := task.GetUncommittedEvents()
	require.Len(t, evts, 1)
	created, ok := evts[0].(events.TaskCreated)
	require.True(t, ok)
	assert.Nil(t, created.ThoughtID)
}

func TestTask_Apply(t *testing.T) {
	newTitle := "Renamed"
	sameDesc := ""
	done := true
	due := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		changes TaskChanges
		want    []string
	}{
		{"no changes", TaskChanges{}, nil},
		{"unchanged value", TaskChanges{Description: &sameDesc}, nil},
		{"title", TaskChanges{Title: &newTitle}, []string{"title"}},
		{"due date and completion", TaskChanges{DueDate: &due, IsCompleted: &done}, []string{"due_date", "is_completed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("Original", "", nil, valueobjects.ThoughtID{})
			task.MarkEventsAsCommitted()

			changed := task.Apply(tt.changes)
			assert.Equal(t, tt.want, changed)
			if len(tt.want) == 0 {
				assert.Empty(t, task.GetUncommittedEvents())
			} else {
				assert.Len(t, task.GetUncommittedEvents(), 1)
			}
		})
	}
}

func TestTask_ToggleCompletion(t *testing.T) {
	task := NewTask("Walk dog", "", nil, valueobjects.ThoughtID{})
	task.MarkEventsAsCommitted()

	task.ToggleCompletion()
	assert.True(t, task.IsCompleted())
	task.ToggleCompletion()
	assert.False(t, task.IsCompleted())

	evts := task.GetUncommittedEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, events.TypeTaskCompletionToggle, evts[1].GetEventType())
}

func TestNewDraftTask(t *testing.T) {
	id, _ := valueobjects.NewThoughtIDFromString("source")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	thought := ReconstructThought(id, "content", ts)

	draft := NewDraftTask("Do it", thought)

	assert.True(t, draft.CreatedAt().Equal(ts))
	assert.True(t, draft.ThoughtID().Equals(id))
	assert.Empty(t, draft.GetUncommittedEvents())
}
