package commands

import (
	"time"

	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/utils"
)

// CreateThoughtCommand records a new thought. Empty content is allowed.
type CreateThoughtCommand struct {
	Content string `json:"content"`
}

// Validate validates the command
func (cmd CreateThoughtCommand) Validate() error {
	return nil
}

// UpdateThoughtCommand replaces the content of an existing thought
type UpdateThoughtCommand struct {
	ThoughtID string `json:"thought_id" validate:"required"`
	Content   string `json:"content"`
}

// Validate validates the command
func (cmd UpdateThoughtCommand) Validate() error {
	return validate(cmd)
}

// DeleteThoughtCommand removes a thought
type DeleteThoughtCommand struct {
	ThoughtID string `json:"thought_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteThoughtCommand) Validate() error {
	return validate(cmd)
}

// ClearThoughtsForDateCommand removes every thought recorded on a calendar day
type ClearThoughtsForDateCommand struct {
	Date time.Time
}

// Validate validates the command
func (cmd ClearThoughtsForDateCommand) Validate() error {
	if cmd.Date.IsZero() {
		return pkgerrors.NewValidationError("date is required")
	}
	return nil
}

// ClearThoughtsResult reports how many thoughts a clear removed
type ClearThoughtsResult struct {
	DeletedCount int
}

func validate(cmd interface{}) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
