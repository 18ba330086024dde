package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ErrorHandler writes errors as JSON responses and logs them by severity.
// In debug mode internal messages and stack traces are exposed.
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{logger: logger, debug: debug}
}

// Handle writes err. Errors that are not AppErrors become a generic 500.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		appErr = &AppError{
			Type:       ErrorTypeInternal,
			Message:    "An internal error occurred",
			Cause:      err,
			HTTPStatus: http.StatusInternalServerError,
		}
		if h.debug {
			appErr.Message = err.Error()
		}
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	resp := ErrorResponse{
		Error:     true,
		Type:      string(appErr.Type),
		Message:   appErr.Message,
		Code:      appErr.Code,
		Details:   appErr.Details,
		RequestID: middleware.GetReqID(r.Context()),
	}
	if h.debug && appErr.StackTrace != "" {
		details := make(map[string]interface{}, len(resp.Details)+1)
		for k, v := range resp.Details {
			details[k] = v
		}
		details["stack_trace"] = appErr.StackTrace
		resp.Details = details
	}

	fields := []zap.Field{
		zap.String("error_type", resp.Type),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", resp.RequestID),
	}
	if appErr.Code != "" {
		fields = append(fields, zap.String("error_code", appErr.Code))
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.Error(appErr.Cause))
	}
	if ce := h.logger.Check(severity(status), appErr.Message); ce != nil {
		ce.Write(fields...)
	}

	h.write(w, status, resp)
}

// HandleStatus writes a bare status and message, for router-level failures
// that never reach a handler
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Error:     true,
		Type:      string(typeForStatus(status)),
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	}

	h.logger.Warn("HTTP error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("message", message),
	)

	h.write(w, status, resp)
}

// Middleware turns panics in downstream handlers into 500 responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) write(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

func severity(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

func typeForStatus(status int) ErrorType {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return ErrorTypeValidation
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusServiceUnavailable:
		return ErrorTypeUnavailable
	case http.StatusBadGateway:
		return ErrorTypeExternal
	default:
		return ErrorTypeInternal
	}
}
