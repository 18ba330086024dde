package handlers

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/application/queries"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/utils"
)

// ThoughtQueryHandler serves read-only thought queries
type ThoughtQueryHandler struct {
	thoughtRepo ports.ThoughtRepository
	logger      *zap.Logger
}

// NewThoughtQueryHandler creates a new handler instance
func NewThoughtQueryHandler(thoughtRepo ports.ThoughtRepository, logger *zap.Logger) *ThoughtQueryHandler {
	return &ThoughtQueryHandler{
		thoughtRepo: thoughtRepo,
		logger:      logger,
	}
}

// ListThoughts returns every thought, newest first
func (h *ThoughtQueryHandler) ListThoughts(ctx context.Context, _ queries.ListThoughtsQuery) ([]*entities.Thought, error) {
	thoughts, err := h.thoughtRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	sortNewestFirst(thoughts)
	return thoughts, nil
}

// GetThought returns one thought by id
func (h *ThoughtQueryHandler) GetThought(ctx context.Context, query queries.GetThoughtQuery) (*entities.Thought, error) {
	id, err := valueobjects.NewThoughtIDFromString(query.ThoughtID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return h.thoughtRepo.FindByID(ctx, id)
}

// ListThoughtDates returns the distinct days with thoughts as YYYY-MM-DD,
// newest first
func (h *ThoughtQueryHandler) ListThoughtDates(ctx context.Context, _ queries.ListThoughtDatesQuery) ([]string, error) {
	thoughts, err := h.thoughtRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}

	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, thought := range thoughts {
		day := thought.Timestamp().Format(utils.DateLayout)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}

	// the layout sorts lexically in calendar order
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// ListThoughtsByDate returns the thoughts of one calendar day, newest first
func (h *ThoughtQueryHandler) ListThoughtsByDate(ctx context.Context, query queries.ListThoughtsByDateQuery) ([]*entities.Thought, error) {
	thoughts, err := h.thoughtRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}

	matching := make([]*entities.Thought, 0)
	for _, thought := range thoughts {
		if utils.SameDay(thought.Timestamp(), query.Date) {
			matching = append(matching, thought)
		}
	}
	sortNewestFirst(matching)
	return matching, nil
}

func sortNewestFirst(thoughts []*entities.Thought) {
	sort.SliceStable(thoughts, func(i, j int) bool {
		return thoughts[i].Timestamp().After(thoughts[j].Timestamp())
	})
}
