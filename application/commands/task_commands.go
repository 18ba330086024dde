package commands

import (
	"time"

	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/utils"
)

// CreateTaskCommand creates a standalone or thought-linked task.
// An empty title is accepted.
type CreateTaskCommand struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	ThoughtID   string     `json:"thought_id"`
}

// Validate validates the command
func (cmd CreateTaskCommand) Validate() error {
	return validate(cmd)
}

// CreateTasksBulkCommand creates several tasks in one write
type CreateTasksBulkCommand struct {
	Tasks []CreateTaskCommand `json:"tasks"`
}

// Validate validates every task in the batch
func (cmd CreateTasksBulkCommand) Validate() error {
	if err := utils.ValidateSlice(cmd.Tasks); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// UpdateTaskCommand applies a partial update; nil fields are left untouched
type UpdateTaskCommand struct {
	TaskID      string     `json:"task_id" validate:"required"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

// Validate validates the command
func (cmd UpdateTaskCommand) Validate() error {
	return validate(cmd)
}

// ToggleTaskCommand flips a task's completion flag
type ToggleTaskCommand struct {
	TaskID string `json:"task_id" validate:"required"`
}

// Validate validates the command
func (cmd ToggleTaskCommand) Validate() error {
	return validate(cmd)
}

// DeleteTaskCommand removes a task
type DeleteTaskCommand struct {
	TaskID string `json:"task_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteTaskCommand) Validate() error {
	return validate(cmd)
}
