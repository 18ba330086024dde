// Package errors defines the typed application error used across layers and
// its mapping onto HTTP responses.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType classifies an AppError
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypeStorage     ErrorType = "STORAGE"
	ErrorTypeExternal    ErrorType = "EXTERNAL"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:  http.StatusBadRequest,
	ErrorTypeNotFound:    http.StatusNotFound,
	ErrorTypeInternal:    http.StatusInternalServerError,
	ErrorTypeUnavailable: http.StatusServiceUnavailable,
	ErrorTypeStorage:     http.StatusInternalServerError,
	ErrorTypeExternal:    http.StatusBadGateway,
}

// AppError carries a type, a client-safe message and an optional cause
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode sets a machine-readable code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

func newError(t ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:       t,
		Message:    message,
		Cause:      cause,
		HTTPStatus: statusByType[t],
		StackTrace: stackTrace(),
	}
}

// stackTrace skips itself, newError and the exported constructor
func stackTrace() string {
	var pcs [32]uintptr
	frames := runtime.CallersFrames(pcs[:runtime.Callers(4, pcs[:])])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			return b.String()
		}
	}
}

func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message, nil)
}

// NewNotFoundError reports a missing resource, e.g. NewNotFoundError("Task")
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, resource+" not found", nil)
}

func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message, nil)
}

func NewUnavailableError(service string) *AppError {
	return newError(ErrorTypeUnavailable, fmt.Sprintf("service '%s' is unavailable", service), nil)
}

// NewStorageError wraps a failed persistence operation
func NewStorageError(operation string, err error) *AppError {
	return newError(ErrorTypeStorage, fmt.Sprintf("storage operation '%s' failed", operation), err)
}

// NewExternalError wraps a failed call to a remote service
func NewExternalError(service string, err error) *AppError {
	return newError(ErrorTypeExternal, fmt.Sprintf("external service '%s' error", service), err)
}

// GetAppError returns the first AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsNotFound(err error) bool   { return IsType(err, ErrorTypeNotFound) }
func IsValidation(err error) bool { return IsType(err, ErrorTypeValidation) }

// Wrap prefixes err's message. AppErrors keep their type; anything else
// becomes an internal error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = message + ": " + appErr.Message
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}
