package handlers

import (
	"strings"
	"time"

	"stratagist-backend/application/commands"
	"stratagist-backend/domain/core/entities"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/utils"
)

// ThoughtResponse is the wire shape of a thought
type ThoughtResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// TaskResponse is the wire shape of a task
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
	IsCompleted bool    `json:"is_completed"`
	ThoughtID   *string `json:"thought_id"`
}

// ThoughtWithTasksResponse is returned when a thought is created
type ThoughtWithTasksResponse struct {
	Thought        ThoughtResponse `json:"thought"`
	ExtractedTasks []TaskResponse  `json:"extracted_tasks"`
	UsedAI         bool            `json:"used_ai"`
}

// ExtractTasksResponse is returned by the extraction endpoint
type ExtractTasksResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	UsedAI bool           `json:"used_ai"`
}

// ThoughtRequest carries thought content for create and replace
type ThoughtRequest struct {
	Content *string `json:"content" validate:"required"`
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       *string `json:"title" validate:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	ThoughtID   *string `json:"thought_id"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	IsCompleted *bool   `json:"is_completed"`
}

// ExtractTasksRequest represents the request body for ad-hoc extraction
type ExtractTasksRequest struct {
	ThoughtID *string `json:"thought_id" validate:"required"`
	Content   *string `json:"content" validate:"required"`
}

func toThoughtResponse(t *entities.Thought) ThoughtResponse {
	return ThoughtResponse{
		ID:        t.ID().String(),
		Content:   t.Content(),
		Timestamp: utils.FormatTimestamp(t.Timestamp()),
	}
}

func toThoughtResponses(thoughts []*entities.Thought) []ThoughtResponse {
	out := make([]ThoughtResponse, 0, len(thoughts))
	for _, t := range thoughts {
		out = append(out, toThoughtResponse(t))
	}
	return out
}

func toTaskResponse(t *entities.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt()),
		IsCompleted: t.IsCompleted(),
		ThoughtID:   t.ThoughtID().Ptr(),
	}
	if due := t.DueDate(); due != nil {
		s := utils.FormatTimestamp(*due)
		resp.DueDate = &s
	}
	return resp
}

func toTaskResponses(tasks []*entities.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func (req CreateTaskRequest) toCommand() (commands.CreateTaskCommand, error) {
	due, err := parseOptionalTime("due_date", req.DueDate)
	if err != nil {
		return commands.CreateTaskCommand{}, err
	}
	cmd := commands.CreateTaskCommand{
		Title:       *req.Title,
		Description: req.Description,
		DueDate:     due,
	}
	if req.ThoughtID != nil {
		cmd.ThoughtID = *req.ThoughtID
	}
	return cmd, nil
}

func (req UpdateTaskRequest) toCommand(taskID string) (commands.UpdateTaskCommand, error) {
	due, err := parseOptionalTime("due_date", req.DueDate)
	if err != nil {
		return commands.UpdateTaskCommand{}, err
	}
	return commands.UpdateTaskCommand{
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		IsCompleted: req.IsCompleted,
	}, nil
}

// parseOptionalTime accepts an ISO-8601 timestamp or a bare date
func parseOptionalTime(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if t, err := utils.ParseTimestamp(s); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation(utils.DateLayout, s, time.Local); err == nil {
		return &t, nil
	}
	return nil, pkgerrors.NewValidationError(field + " must be an ISO-8601 date or timestamp")
}

func validateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
