package jsonfile

import (
	"fmt"
	"time"

	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/pkg/utils"
)

type thoughtRecord struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type taskRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
	IsCompleted bool    `json:"is_completed"`
	ThoughtID   *string `json:"thought_id"`
}

func toThoughtRecord(t *entities.Thought) thoughtRecord {
	return thoughtRecord{
		ID:        t.ID().String(),
		Content:   t.Content(),
		Timestamp: utils.FormatTimestamp(t.Timestamp()),
	}
}

func (r thoughtRecord) toEntity() (*entities.Thought, error) {
	id, err := valueobjects.NewThoughtIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	ts, err := utils.ParseTimestamp(r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("thought %s: %w", r.ID, err)
	}
	return entities.ReconstructThought(id, r.Content, ts), nil
}

func toTaskRecord(t *entities.Task) taskRecord {
	rec := taskRecord{
		ID:          t.ID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt()),
		IsCompleted: t.IsCompleted(),
		ThoughtID:   t.ThoughtID().Ptr(),
	}
	if due := t.DueDate(); due != nil {
		s := utils.FormatTimestamp(*due)
		rec.DueDate = &s
	}
	return rec
}

func (r taskRecord) toEntity() (*entities.Task, error) {
	id, err := valueobjects.NewTaskIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	createdAt, err := utils.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", r.ID, err)
	}

	var dueDate *time.Time
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := utils.ParseTimestamp(*r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %s due date: %w", r.ID, err)
		}
		dueDate = &due
	}

	var thoughtID valueobjects.ThoughtID
	if r.ThoughtID != nil && *r.ThoughtID != "" {
		thoughtID, _ = valueobjects.NewThoughtIDFromString(*r.ThoughtID)
	}

	return entities.ReconstructTask(id, r.Title, r.Description, createdAt, dueDate, r.IsCompleted, thoughtID), nil
}
