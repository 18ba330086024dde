package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stratagist-backend/application/commands"
	"stratagist-backend/application/commands/bus"
	"stratagist-backend/application/queries"
	querybus "stratagist-backend/application/queries/bus"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/pkg/common"
	pkgerrors "stratagist-backend/pkg/errors"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *TaskHandler {
	return &TaskHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListTasksQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponses(result.([]*entities.Task)))
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := common.ParseJSONBody(w, r, &req, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd, err := req.toCommand()
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponse(result.(*entities.Task)))
}

// CreateTasksBulk handles POST /api/tasks/bulk. The body is a bare array.
func (h *TaskHandler) CreateTasksBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []CreateTaskRequest
	if err := common.ParseJSONBody(w, r, &reqs, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	cmd := commands.CreateTasksBulkCommand{Tasks: make([]commands.CreateTaskCommand, 0, len(reqs))}
	for _, req := range reqs {
		if err := validateRequest(req); err != nil {
			h.errors.Handle(w, r, err)
			return
		}
		taskCmd, err := req.toCommand()
		if err != nil {
			h.errors.Handle(w, r, err)
			return
		}
		cmd.Tasks = append(cmd.Tasks, taskCmd)
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponses(result.([]*entities.Task)))
}

// GetTask handles GET /api/tasks/{taskID}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetTaskQuery{TaskID: chi.URLParam(r, "taskID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponse(result.(*entities.Task)))
}

// UpdateTask handles PUT /api/tasks/{taskID}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := common.ParseJSONBody(w, r, &req, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd, err := req.toCommand(chi.URLParam(r, "taskID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponse(result.(*entities.Task)))
}

// ToggleTask handles PATCH /api/tasks/{taskID}/toggle
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	result, err := h.commandBus.Send(r.Context(), commands.ToggleTaskCommand{TaskID: chi.URLParam(r, "taskID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponse(result.(*entities.Task)))
}

// DeleteTask handles DELETE /api/tasks/{taskID}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if _, err := h.commandBus.Send(r.Context(), commands.DeleteTaskCommand{TaskID: chi.URLParam(r, "taskID")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, common.SuccessResponse{Success: true})
}

func (h *TaskHandler) respond(w http.ResponseWriter, status int, body interface{}) {
	if err := common.RespondJSON(w, status, body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
