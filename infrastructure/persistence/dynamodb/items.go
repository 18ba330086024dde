package dynamodb

import (
	"fmt"
	"time"

	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/pkg/utils"
)

type thoughtItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	ThoughtID  string `dynamodbav:"ThoughtID"`
	Content    string `dynamodbav:"Content"`
	Timestamp  string `dynamodbav:"Timestamp"`
}

type taskItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"EntityType"`
	TaskID      string `dynamodbav:"TaskID"`
	Title       string `dynamodbav:"Title"`
	Description string `dynamodbav:"Description"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
	DueDate     string `dynamodbav:"DueDate,omitempty"`
	IsCompleted bool   `dynamodbav:"IsCompleted"`
	ThoughtID   string `dynamodbav:"ThoughtID,omitempty"`
}

func newThoughtItem(t *entities.Thought) thoughtItem {
	return thoughtItem{
		PK:         entityThought + "#" + t.ID().String(),
		SK:         metadataSK,
		EntityType: entityThought,
		ThoughtID:  t.ID().String(),
		Content:    t.Content(),
		Timestamp:  utils.FormatTimestamp(t.Timestamp()),
	}
}

func (i thoughtItem) toEntity() (*entities.Thought, error) {
	id, err := valueobjects.NewThoughtIDFromString(i.ThoughtID)
	if err != nil {
		return nil, err
	}
	ts, err := utils.ParseTimestamp(i.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("thought %s: %w", i.ThoughtID, err)
	}
	return entities.ReconstructThought(id, i.Content, ts), nil
}

func newTaskItem(t *entities.Task) taskItem {
	item := taskItem{
		PK:          entityTask + "#" + t.ID().String(),
		SK:          metadataSK,
		EntityType:  entityTask,
		TaskID:      t.ID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt()),
		IsCompleted: t.IsCompleted(),
		ThoughtID:   t.ThoughtID().String(),
	}
	if due := t.DueDate(); due != nil {
		item.DueDate = utils.FormatTimestamp(*due)
	}
	return item
}

func (i taskItem) toEntity() (*entities.Task, error) {
	id, err := valueobjects.NewTaskIDFromString(i.TaskID)
	if err != nil {
		return nil, err
	}
	createdAt, err := utils.ParseTimestamp(i.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", i.TaskID, err)
	}

	var dueDate *time.Time
	if i.DueDate != "" {
		due, err := utils.ParseTimestamp(i.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %s due date: %w", i.TaskID, err)
		}
		dueDate = &due
	}

	var thoughtID valueobjects.ThoughtID
	if i.ThoughtID != "" {
		thoughtID, _ = valueobjects.NewThoughtIDFromString(i.ThoughtID)
	}

	return entities.ReconstructTask(id, i.Title, i.Description, createdAt, dueDate, i.IsCompleted, thoughtID), nil
}
