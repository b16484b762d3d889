package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConflict          = NewDomainError("CONFLICT", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidTransition = NewDomainError("INVALID_TRANSITION", "Status transition not allowed")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden         = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrGroupLocked       = NewDomainError("GROUP_LOCKED", "Supervision group is locked for signing")
	ErrProjectIncomplete = NewDomainError("PROJECT_INCOMPLETE", "Doctoral project is incomplete")
	ErrPaperIncomplete   = NewDomainError("PAPER_INCOMPLETE", "Confirmation paper is incomplete")
	ErrDateOutOfRange    = NewDomainError("DATE_OUT_OF_RANGE", "Date falls outside the allowed range")
	ErrSessionMismatch   = NewDomainError("SESSION_MISMATCH", "Mark correction must target the latest session")
)

// FieldViolation points at a single invalid field or entity within a batch
type FieldViolation struct {
	Ref     uuid.UUID `json:"ref"`
	Field   string    `json:"field,omitempty"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// BatchError aggregates per-entity violations for batch operations so the
// caller can surface every offending entity at once
type BatchError struct {
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	Violations []FieldViolation `json:"violations"`
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("%s (%d violations)", e.Message, len(e.Violations))
}

// NewBatchError creates a new batch error
func NewBatchError(code, message string, violations []FieldViolation) *BatchError {
	return &BatchError{Code: code, Message: message, Violations: violations}
}

// DeferredError signals that an operation was delegated to an asynchronous
// task; the caller receives the task identity so it can be polled
type DeferredError struct {
	TaskID uuid.UUID `json:"task_id"`
	Kind   string    `json:"kind"`
}

// Error implements the error interface
func (e *DeferredError) Error() string {
	return fmt.Sprintf("operation deferred to task %s (%s)", e.TaskID, e.Kind)
}
