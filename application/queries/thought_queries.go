package queries

import (
	"time"

	pkgerrors "stratagist-backend/pkg/errors"
)

// ListThoughtsQuery lists every thought, newest first
type ListThoughtsQuery struct{}

// Validate validates the query
func (q ListThoughtsQuery) Validate() error { return nil }

// GetThoughtQuery fetches a single thought
type GetThoughtQuery struct {
	ThoughtID string
}

// Validate validates the query
func (q GetThoughtQuery) Validate() error {
	if q.ThoughtID == "" {
		return pkgerrors.NewValidationError("thought ID is required")
	}
	return nil
}

// ListThoughtDatesQuery lists the distinct calendar days that have thoughts
type ListThoughtDatesQuery struct{}

// Validate validates the query
func (q ListThoughtDatesQuery) Validate() error { return nil }

// ListThoughtsByDateQuery lists the thoughts recorded on one calendar day
type ListThoughtsByDateQuery struct {
	Date time.Time
}

// Validate validates the query
func (q ListThoughtsByDateQuery) Validate() error {
	if q.Date.IsZero() {
		return pkgerrors.NewValidationError("date is required")
	}
	return nil
}
