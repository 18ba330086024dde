package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"stratagist-backend/application/queries"
	querybus "stratagist-backend/application/queries/bus"
	"stratagist-backend/application/services"
	"stratagist-backend/pkg/common"
	pkgerrors "stratagist-backend/pkg/errors"
)

// ExtractionHandler serves ad-hoc task extraction
type ExtractionHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ExtractionHandler {
	return &ExtractionHandler{queryBus: queryBus, errors: errorHandler, logger: logger}
}

// ExtractTasks handles POST /api/extract-tasks. Nothing is stored.
func (h *ExtractionHandler) ExtractTasks(w http.ResponseWriter, r *http.Request) {
	var req ExtractTasksRequest
	if err := common.ParseJSONBody(w, r, &req, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ExtractTasksQuery{
		ThoughtID: *req.ThoughtID,
		Content:   *req.Content,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	extraction := result.(*services.ExtractionResult)

	if err := common.RespondJSON(w, http.StatusOK, ExtractTasksResponse{
		Tasks:  toTaskResponses(extraction.Tasks),
		UsedAI: extraction.UsedExternal,
	}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
