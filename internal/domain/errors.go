package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key for validation errors not tied to a single field
const NonFieldErrors = "non_field_errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrInvalidToken    = errors.New("token is invalid or expired")
	ErrBadCredentials  = errors.New("no active account found with the given credentials")
	ErrConflict        = errors.New("resource is still referenced")
)

// ValidationError carries field keyed messages for a rejected write
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError builds a validation error with one message for one field
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Add appends a message for a field
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no message was recorded
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Summary returns the single message shown alongside the field map
func (e *ValidationError) Summary() string {
	if msgs := e.Fields[NonFieldErrors]; len(msgs) > 0 {
		return msgs[0]
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(e.Fields[k]) > 0 {
			return k + ": " + e.Fields[k][0]
		}
	}
	return "Invalid input."
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(msgs, "; ")))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}
