package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	pkgerrors "stratagist-backend/pkg/errors"
)

// DefaultMaxBodyBytes caps request bodies read by ParseJSONBody
const DefaultMaxBodyBytes int64 = 1 << 20

// SuccessResponse is returned by endpoints that only acknowledge an action
type SuccessResponse struct {
	Success      bool `json:"success"`
	DeletedCount *int `json:"deleted_count,omitempty"`
}

// RespondJSON writes data as a bare JSON document
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// RespondSuccess writes {"success": true}
func RespondSuccess(w http.ResponseWriter) error {
	return RespondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// ParseJSONBody decodes a JSON request body with a size limit. Decode
// failures are reported as validation errors.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return pkgerrors.NewValidationError(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return pkgerrors.NewValidationError("request body is empty")
		default:
			return pkgerrors.NewValidationError("invalid request body: " + err.Error())
		}
	}

	return nil
}
