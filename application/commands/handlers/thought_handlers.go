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
	"stratagist-backend/pkg/utils"
)

// CreateThoughtHandler handles thought creation
type CreateThoughtHandler struct {
	thoughtRepo ports.ThoughtRepository
	publisher   ports.EventPublisher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewCreateThoughtHandler creates a new handler instance
func NewCreateThoughtHandler(
	thoughtRepo ports.ThoughtRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CreateThoughtHandler {
	return &CreateThoughtHandler{
		thoughtRepo: thoughtRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle stores a new thought stamped with the current time
func (h *CreateThoughtHandler) Handle(ctx context.Context, cmd commands.CreateThoughtCommand) (*entities.Thought, error) {
	thought := entities.NewThought(cmd.Content)

	if err := h.thoughtRepo.Save(ctx, thought); err != nil {
		return nil, fmt.Errorf("failed to save thought: %w", err)
	}
	h.metrics.RecordThoughtCreated()

	h.logger.Debug("Thought created",
		zap.String("thought_id", thought.ID().String()),
		zap.Int("length", len(cmd.Content)),
	)

	publishEvents(ctx, h.publisher, h.logger, thought)
	return thought, nil
}

// UpdateThoughtHandler handles content replacement
type UpdateThoughtHandler struct {
	thoughtRepo ports.ThoughtRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewUpdateThoughtHandler creates a new handler instance
func NewUpdateThoughtHandler(
	thoughtRepo ports.ThoughtRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateThoughtHandler {
	return &UpdateThoughtHandler{
		thoughtRepo: thoughtRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle replaces a thought's content, keeping its id and timestamp
func (h *UpdateThoughtHandler) Handle(ctx context.Context, cmd commands.UpdateThoughtCommand) (*entities.Thought, error) {
	id, err := thoughtID(cmd.ThoughtID)
	if err != nil {
		return nil, err
	}

	thought, err := h.thoughtRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	thought.ReplaceContent(cmd.Content)
	if err := h.thoughtRepo.Update(ctx, thought); err != nil {
		return nil, fmt.Errorf("failed to update thought: %w", err)
	}

	publishEvents(ctx, h.publisher, h.logger, thought)
	return thought, nil
}

// DeleteThoughtHandler handles thought deletion. Tasks derived from the
// thought keep their reference.
type DeleteThoughtHandler struct {
	thoughtRepo ports.ThoughtRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewDeleteThoughtHandler creates a new handler instance
func NewDeleteThoughtHandler(
	thoughtRepo ports.ThoughtRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteThoughtHandler {
	return &DeleteThoughtHandler{
		thoughtRepo: thoughtRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle removes the thought
func (h *DeleteThoughtHandler) Handle(ctx context.Context, cmd commands.DeleteThoughtCommand) error {
	id, err := thoughtID(cmd.ThoughtID)
	if err != nil {
		return err
	}

	if err := h.thoughtRepo.Delete(ctx, id); err != nil {
		return err
	}

	publish(ctx, h.publisher, h.logger, events.NewThoughtDeleted(id.String(), time.Now()))
	return nil
}

// ClearThoughtsForDateHandler removes all thoughts of one calendar day
type ClearThoughtsForDateHandler struct {
	thoughtRepo ports.ThoughtRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewClearThoughtsForDateHandler creates a new handler instance
func NewClearThoughtsForDateHandler(
	thoughtRepo ports.ThoughtRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ClearThoughtsForDateHandler {
	return &ClearThoughtsForDateHandler{
		thoughtRepo: thoughtRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle deletes the day's thoughts and reports how many went
func (h *ClearThoughtsForDateHandler) Handle(ctx context.Context, cmd commands.ClearThoughtsForDateCommand) (*commands.ClearThoughtsResult, error) {
	deleted, err := h.thoughtRepo.DeleteByDate(ctx, cmd.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to clear thoughts: %w", err)
	}

	day := cmd.Date.Format(utils.DateLayout)
	h.logger.Info("Cleared thoughts for date",
		zap.String("date", day),
		zap.Int("deleted", deleted),
	)

	if deleted > 0 {
		publish(ctx, h.publisher, h.logger, events.NewThoughtsCleared(day, deleted, time.Now()))
	}
	return &commands.ClearThoughtsResult{DeletedCount: deleted}, nil
}

func thoughtID(raw string) (valueobjects.ThoughtID, error) {
	id, err := valueobjects.NewThoughtIDFromString(raw)
	if err != nil {
		return id, pkgerrors.NewValidationError(err.Error())
	}
	return id, nil
}
