package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stratagist-backend/application/commands"
	"stratagist-backend/application/commands/bus"
	"stratagist-backend/application/queries"
	querybus "stratagist-backend/application/queries/bus"
	"stratagist-backend/application/services"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/pkg/common"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/utils"
)

// ThoughtHandler handles thought-related HTTP requests
type ThoughtHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewThoughtHandler creates a new thought handler
func NewThoughtHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *ThoughtHandler {
	return &ThoughtHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// ListThoughts handles GET /api/thoughts
func (h *ThoughtHandler) ListThoughts(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListThoughtsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toThoughtResponses(result.([]*entities.Thought)))
}

// ListDates handles GET /api/thoughts/dates
func (h *ThoughtHandler) ListDates(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListThoughtDatesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, result.([]string))
}

// ListByDate handles GET /api/thoughts/date/{date}
func (h *ThoughtHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	date, err := utils.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid date format")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListThoughtsByDateQuery{Date: date})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toThoughtResponses(result.([]*entities.Thought)))
}

// ClearDate handles DELETE /api/thoughts/date/{date}
func (h *ThoughtHandler) ClearDate(w http.ResponseWriter, r *http.Request) {
	date, err := utils.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid date format")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ClearThoughtsForDateCommand{Date: date})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	count := result.(*commands.ClearThoughtsResult).DeletedCount
	h.respond(w, http.StatusOK, common.SuccessResponse{Success: true, DeletedCount: &count})
}

// CreateThought handles POST /api/thoughts. The stored thought is run
// through extraction; the drafts are returned but not persisted.
func (h *ThoughtHandler) CreateThought(w http.ResponseWriter, r *http.Request) {
	var req ThoughtRequest
	if err := common.ParseJSONBody(w, r, &req, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateThoughtCommand{Content: *req.Content})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	thought := result.(*entities.Thought)

	extracted, err := h.queryBus.Ask(r.Context(), queries.ExtractTasksQuery{
		ThoughtID: thought.ID().String(),
		Content:   thought.Content(),
		Timestamp: thought.Timestamp(),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	extraction := extracted.(*services.ExtractionResult)

	h.respond(w, http.StatusOK, ThoughtWithTasksResponse{
		Thought:        toThoughtResponse(thought),
		ExtractedTasks: toTaskResponses(extraction.Tasks),
		UsedAI:         extraction.UsedExternal,
	})
}

// GetThought handles GET /api/thoughts/{thoughtID}
func (h *ThoughtHandler) GetThought(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetThoughtQuery{ThoughtID: chi.URLParam(r, "thoughtID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toThoughtResponse(result.(*entities.Thought)))
}

// UpdateThought handles PUT /api/thoughts/{thoughtID}
func (h *ThoughtHandler) UpdateThought(w http.ResponseWriter, r *http.Request) {
	var req ThoughtRequest
	if err := common.ParseJSONBody(w, r, &req, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateThoughtCommand{
		ThoughtID: chi.URLParam(r, "thoughtID"),
		Content:   *req.Content,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toThoughtResponse(result.(*entities.Thought)))
}

// DeleteThought handles DELETE /api/thoughts/{thoughtID}
func (h *ThoughtHandler) DeleteThought(w http.ResponseWriter, r *http.Request) {
	if _, err := h.commandBus.Send(r.Context(), commands.DeleteThoughtCommand{ThoughtID: chi.URLParam(r, "thoughtID")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, common.SuccessResponse{Success: true})
}

func (h *ThoughtHandler) respond(w http.ResponseWriter, status int, body interface{}) {
	if err := common.RespondJSON(w, status, body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
