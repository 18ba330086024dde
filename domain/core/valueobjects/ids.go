package valueobjects

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ThoughtID is a value object identifying a thought.
// The zero value means "no thought" and is used for tasks without provenance.
type ThoughtID struct {
	value string
}

// NewThoughtID creates a new random ThoughtID
func NewThoughtID() ThoughtID {
	return ThoughtID{value: uuid.New().String()}
}

// NewThoughtIDFromString creates a ThoughtID from an existing identifier.
// Identifiers are opaque: clients may supply any non-blank string.
func NewThoughtIDFromString(id string) (ThoughtID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ThoughtID{}, errors.New("thought ID cannot be empty")
	}
	return ThoughtID{value: id}, nil
}

// String returns the string representation of the ThoughtID
func (id ThoughtID) String() string {
	return id.value
}

// Equals checks if two ThoughtIDs are equal
func (id ThoughtID) Equals(other ThoughtID) bool {
	return id.value == other.value
}

// IsZero checks if the ThoughtID is the zero value
func (id ThoughtID) IsZero() bool {
	return id.value == ""
}

// Ptr returns the identifier as an optional string, nil for the zero value
func (id ThoughtID) Ptr() *string {
	if id.IsZero() {
		return nil
	}
	v := id.value
	return &v
}

// MarshalJSON renders the zero value as null
func (id ThoughtID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ThoughtID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		id.value = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("ThoughtID must be a string")
	}
	id.value = s
	return nil
}

// TaskID is a value object identifying a task
type TaskID struct {
	value string
}

// NewTaskID creates a new random TaskID
func NewTaskID() TaskID {
	return TaskID{value: uuid.New().String()}
}

// NewTaskIDFromString creates a TaskID from an existing identifier
func NewTaskIDFromString(id string) (TaskID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TaskID{}, errors.New("task ID cannot be empty")
	}
	return TaskID{value: id}, nil
}

// String returns the string representation of the TaskID
func (id TaskID) String() string {
	return id.value
}

// Equals checks if two TaskIDs are equal
func (id TaskID) Equals(other TaskID) bool {
	return id.value == other.value
}

// IsZero checks if the TaskID is the zero value
func (id TaskID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id TaskID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *TaskID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("TaskID must be a string")
	}
	id.value = s
	return nil
}
