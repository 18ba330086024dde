package handlers

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/application/queries"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
)

// TaskQueryHandler serves read-only task queries
type TaskQueryHandler struct {
	taskRepo ports.TaskRepository
	logger   *zap.Logger
}

// NewTaskQueryHandler creates a new handler instance
func NewTaskQueryHandler(taskRepo ports.TaskRepository, logger *zap.Logger) *TaskQueryHandler {
	return &TaskQueryHandler{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// ListTasks returns every task, most recently created first
func (h *TaskQueryHandler) ListTasks(ctx context.Context, _ queries.ListTasksQuery) ([]*entities.Task, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt().After(tasks[j].CreatedAt())
	})
	return tasks, nil
}

// GetTask returns one task by id
func (h *TaskQueryHandler) GetTask(ctx context.Context, query queries.GetTaskQuery) (*entities.Task, error) {
	id, err := valueobjects.NewTaskIDFromString(query.TaskID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return h.taskRepo.FindByID(ctx, id)
}
