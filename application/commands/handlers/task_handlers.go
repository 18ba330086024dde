package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stratagist-backend/application/commands"
	"stratagist-backend/application/ports"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
)

// CreateTaskHandler handles task creation
type CreateTaskHandler struct {
	taskRepo  ports.TaskRepository
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewCreateTaskHandler creates a new handler instance
func NewCreateTaskHandler(
	taskRepo ports.TaskRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle stores a new open task
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd commands.CreateTaskCommand) (*entities.Task, error) {
	task, err := newTask(cmd)
	if err != nil {
		return nil, err
	}

	if err := h.taskRepo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	h.metrics.RecordTasksCreated(1)

	publishEvents(ctx, h.publisher, h.logger, task)
	return task, nil
}

// CreateTasksBulkHandler stores several tasks with a single write
type CreateTasksBulkHandler struct {
	taskRepo  ports.TaskRepository
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewCreateTasksBulkHandler creates a new handler instance
func NewCreateTasksBulkHandler(
	taskRepo ports.TaskRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CreateTasksBulkHandler {
	return &CreateTasksBulkHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle stores every task in the batch, in request order
func (h *CreateTasksBulkHandler) Handle(ctx context.Context, cmd commands.CreateTasksBulkCommand) ([]*entities.Task, error) {
	tasks := make([]*entities.Task, 0, len(cmd.Tasks))
	for _, item := range cmd.Tasks {
		task, err := newTask(item)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if len(tasks) > 0 {
		if err := h.taskRepo.SaveAll(ctx, tasks); err != nil {
			return nil, fmt.Errorf("failed to save tasks: %w", err)
		}
	}
	h.metrics.RecordTasksCreated(len(tasks))

	sources := make([]eventSource, 0, len(tasks))
	for _, task := range tasks {
		sources = append(sources, task)
	}
	publishEvents(ctx, h.publisher, h.logger, sources...)

	return tasks, nil
}

// UpdateTaskHandler applies partial task updates
type UpdateTaskHandler struct {
	taskRepo  ports.TaskRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateTaskHandler creates a new handler instance
func NewUpdateTaskHandler(
	taskRepo ports.TaskRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle changes the fields present in the command
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd commands.UpdateTaskCommand) (*entities.Task, error) {
	id, err := taskID(cmd.TaskID)
	if err != nil {
		return nil, err
	}

	task, err := h.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := task.Apply(entities.TaskChanges{
		Title:       cmd.Title,
		Description: cmd.Description,
		DueDate:     cmd.DueDate,
		IsCompleted: cmd.IsCompleted,
	})
	if len(changed) == 0 {
		return task, nil
	}

	if err := h.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	publishEvents(ctx, h.publisher, h.logger, task)
	return task, nil
}

// ToggleTaskHandler flips completion
type ToggleTaskHandler struct {
	taskRepo  ports.TaskRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewToggleTaskHandler creates a new handler instance
func NewToggleTaskHandler(
	taskRepo ports.TaskRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ToggleTaskHandler {
	return &ToggleTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle toggles and stores the task
func (h *ToggleTaskHandler) Handle(ctx context.Context, cmd commands.ToggleTaskCommand) (*entities.Task, error) {
	id, err := taskID(cmd.TaskID)
	if err != nil {
		return nil, err
	}

	task, err := h.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.ToggleCompletion()
	if err := h.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	publishEvents(ctx, h.publisher, h.logger, task)
	return task, nil
}

// DeleteTaskHandler handles task deletion
type DeleteTaskHandler struct {
	taskRepo  ports.TaskRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteTaskHandler creates a new handler instance
func NewDeleteTaskHandler(
	taskRepo ports.TaskRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle removes the task
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd commands.DeleteTaskCommand) error {
	id, err := taskID(cmd.TaskID)
	if err != nil {
		return err
	}

	if err := h.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	publish(ctx, h.publisher, h.logger, events.NewTaskDeleted(id.String(), time.Now()))
	return nil
}

func newTask(cmd commands.CreateTaskCommand) (*entities.Task, error) {
	var origin valueobjects.ThoughtID
	if cmd.ThoughtID != "" {
		id, err := thoughtID(cmd.ThoughtID)
		if err != nil {
			return nil, err
		}
		origin = id
	}
	return entities.NewTask(cmd.Title, cmd.Description, cmd.DueDate, origin), nil
}

func taskID(raw string) (valueobjects.TaskID, error) {
	id, err := valueobjects.NewTaskIDFromString(raw)
	if err != nil {
		return id, pkgerrors.NewValidationError(err.Error())
	}
	return id, nil
}
