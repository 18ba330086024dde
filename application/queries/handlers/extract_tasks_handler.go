package handlers

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/application/queries"
	"stratagist-backend/application/services"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
)

// ExtractTasksHandler runs the extraction orchestrator over ad-hoc content.
// Nothing is stored; a tasks.extracted event is published for observers.
type ExtractTasksHandler struct {
	extraction *services.ExtractionService
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewExtractTasksHandler creates a new handler instance
func NewExtractTasksHandler(
	extraction *services.ExtractionService,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ExtractTasksHandler {
	return &ExtractTasksHandler{
		extraction: extraction,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle extracts task drafts. It never fails.
func (h *ExtractTasksHandler) Handle(ctx context.Context, query queries.ExtractTasksQuery) (*services.ExtractionResult, error) {
	var id valueobjects.ThoughtID
	if strings.TrimSpace(query.ThoughtID) != "" {
		id, _ = valueobjects.NewThoughtIDFromString(query.ThoughtID)
	}

	ts := query.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	thought := entities.NewTransientThought(id, query.Content, ts)
	result := h.extraction.Extract(ctx, thought)

	h.logger.Debug("Extracted tasks",
		zap.String("thought_id", id.String()),
		zap.Int("tasks", len(result.Tasks)),
		zap.Bool("used_external", result.UsedExternal),
	)

	if h.publisher != nil && len(result.Tasks) > 0 {
		event := events.NewTasksExtracted(id.String(), len(result.Tasks), result.UsedExternal, time.Now())
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish extraction event", zap.Error(err))
		}
	}

	return &result, nil
}
