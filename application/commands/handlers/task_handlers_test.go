package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stratagist-backend/application/commands"
	"stratagist-backend/application/ports/mocks"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
)

func TestCreateTaskHandler_Handle(t *testing.T) {
	ctx := context.Background()
	due := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cmd         commands.CreateTaskCommand
		wantThought string
		wantErr     bool
	}{
		{"standalone", commands.CreateTaskCommand{Title: "Walk dog"}, "", false},
		{"linked to thought", commands.CreateTaskCommand{Title: "Walk dog", ThoughtID: "t-9", DueDate: &due}, "t-9", false},
		{"blank thought id", commands.CreateTaskCommand{Title: "Walk dog", ThoughtID: "  "}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockTaskRepository)
			publisher := new(mocks.MockEventPublisher)
			repo.On("Save", ctx, mock.AnythingOfType("*entities.Task")).Return(nil)
			publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

			task, err := NewCreateTaskHandler(repo, publisher, nil, zap.NewNop()).Handle(ctx, tt.cmd)
			if tt.wantErr {
				assert.True(t, pkgerrors.IsValidation(err))
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.cmd.Title, task.Title())
			assert.Equal(t, tt.wantThought, task.ThoughtID().String())
			assert.False(t, task.IsCompleted())
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateTasksBulkHandler_Handle(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockTaskRepository)
	publisher := new(mocks.MockEventPublisher)

	repo.On("SaveAll", ctx, mock.MatchedBy(func(tasks []*entities.Task) bool {
		return len(tasks) == 2 && tasks[0].Title() == "One" && tasks[1].Title() == "Two"
	})).Return(nil)
	publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

	tasks, err := NewCreateTasksBulkHandler(repo, publisher, nil, zap.NewNop()).Handle(ctx, commands.CreateTasksBulkCommand{
		Tasks: []commands.CreateTaskCommand{{Title: "One"}, {Title: "Two"}},
	})

	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	repo.AssertExpectations(t)
}

func TestCreateTasksBulkHandler_Handle_Empty(t *testing.T) {
	repo := new(mocks.MockTaskRepository)

	tasks, err := NewCreateTasksBulkHandler(repo, nil, nil, zap.NewNop()).
		Handle(context.Background(), commands.CreateTasksBulkCommand{})

	require.NoError(t, err)
	assert.Empty(t, tasks)
	repo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestUpdateTaskHandler_Handle(t *testing.T) {
	ctx := context.Background()
	id, _ := valueobjects.NewTaskIDFromString("task-1")
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("partial update", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		publisher := new(mocks.MockEventPublisher)
		existing := entities.ReconstructTask(id, "Old", "keep me", created, nil, false, valueobjects.ThoughtID{})
		title := "New"

		repo.On("FindByID", ctx, id).Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)
		publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

		task, err := NewUpdateTaskHandler(repo, publisher, zap.NewNop()).
			Handle(ctx, commands.UpdateTaskCommand{TaskID: "task-1", Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "New", task.Title())
		assert.Equal(t, "keep me", task.Description())
		assert.True(t, task.CreatedAt().Equal(created))
		repo.AssertExpectations(t)
	})

	t.Run("no changes skips write", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		existing := entities.ReconstructTask(id, "Same", "", created, nil, false, valueobjects.ThoughtID{})
		repo.On("FindByID", ctx, id).Return(existing, nil)

		task, err := NewUpdateTaskHandler(repo, nil, zap.NewNop()).
			Handle(ctx, commands.UpdateTaskCommand{TaskID: "task-1"})

		require.NoError(t, err)
		assert.Equal(t, "Same", task.Title())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		repo.On("FindByID", ctx, id).Return(nil, pkgerrors.NewNotFoundError("Task"))

		_, err := NewUpdateTaskHandler(repo, nil, zap.NewNop()).
			Handle(ctx, commands.UpdateTaskCommand{TaskID: "task-1"})

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestToggleTaskHandler_Handle(t *testing.T) {
	ctx := context.Background()
	id, _ := valueobjects.NewTaskIDFromString("task-2")
	existing := entities.ReconstructTask(id, "Toggle me", "", time.Now(), nil, false, valueobjects.ThoughtID{})

	repo := new(mocks.MockTaskRepository)
	publisher := new(mocks.MockEventPublisher)
	repo.On("FindByID", ctx, id).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)
	publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

	handler := NewToggleTaskHandler(repo, publisher, zap.NewNop())

	task, err := handler.Handle(ctx, commands.ToggleTaskCommand{TaskID: "task-2"})
	require.NoError(t, err)
	assert.True(t, task.IsCompleted())

	task, err = handler.Handle(ctx, commands.ToggleTaskCommand{TaskID: "task-2"})
	require.NoError(t, err)
	assert.False(t, task.IsCompleted())
}

func TestDeleteTaskHandler_Handle_NotFound(t *testing.T) {
	ctx := context.Background()
	id, _ := valueobjects.NewTaskIDFromString("missing")
	repo := new(mocks.MockTaskRepository)
	publisher := new(mocks.MockEventPublisher)
	repo.On("Delete", ctx, id).Return(pkgerrors.NewNotFoundError("Task"))

	err := NewDeleteTaskHandler(repo, publisher, zap.NewNop()).
		Handle(ctx, commands.DeleteTaskCommand{TaskID: "missing"})

	assert.True(t, pkgerrors.IsNotFound(err))
	publisher.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
}
