package queries

import (
	"time"

	pkgerrors "stratagist-backend/pkg/errors"
)

// ListTasksQuery lists every task, most recently created first
type ListTasksQuery struct{}

// Validate validates the query
func (q ListTasksQuery) Validate() error { return nil }

// GetTaskQuery fetches a single task
type GetTaskQuery struct {
	TaskID string
}

// Validate validates the query
func (q GetTaskQuery) Validate() error {
	if q.TaskID == "" {
		return pkgerrors.NewValidationError("task ID is required")
	}
	return nil
}

// ExtractTasksQuery derives task drafts from content without storing them.
// ThoughtID may be empty; a zero Timestamp means now.
type ExtractTasksQuery struct {
	ThoughtID string
	Content   string
	Timestamp time.Time
}

// Validate validates the query
func (q ExtractTasksQuery) Validate() error { return nil }
