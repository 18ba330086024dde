package ports

import (
	"context"
	"time"

	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
)

// ThoughtRepository defines the interface for thought persistence.
// Lookups of unknown ids return a NOT_FOUND AppError.
type ThoughtRepository interface {
	// Save appends a new thought
	Save(ctx context.Context, thought *entities.Thought) error

	// FindByID retrieves a thought by its ID
	FindByID(ctx context.Context, id valueobjects.ThoughtID) (*entities.Thought, error)

	// FindAll returns every stored thought in storage order
	FindAll(ctx context.Context) ([]*entities.Thought, error)

	// Update overwrites an existing thought
	Update(ctx context.Context, thought *entities.Thought) error

	// Delete removes a thought. Tasks referencing it are untouched.
	Delete(ctx context.Context, id valueobjects.ThoughtID) error

	// DeleteByDate removes every thought recorded on the calendar day of date
	// and returns how many were removed
	DeleteByDate(ctx context.Context, date time.Time) (int, error)
}

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	// Save appends a new task
	Save(ctx context.Context, task *entities.Task) error

	// SaveAll appends several tasks in one write
	SaveAll(ctx context.Context, tasks []*entities.Task) error

	// FindByID retrieves a task by its ID
	FindByID(ctx context.Context, id valueobjects.TaskID) (*entities.Task, error)

	// FindAll returns every stored task in storage order
	FindAll(ctx context.Context) ([]*entities.Task, error)

	// Update overwrites an existing task
	Update(ctx context.Context, task *entities.Task) error

	// Delete removes a task
	Delete(ctx context.Context, id valueobjects.TaskID) error
}

// TaskExtractor derives task drafts from a thought
type TaskExtractor interface {
	// Extract returns drafts that share the thought's timestamp and id
	Extract(ctx context.Context, thought *entities.Thought) ([]*entities.Task, error)

	// Name identifies the extractor in logs and metrics
	Name() string
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
