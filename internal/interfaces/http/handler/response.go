package handler

import "github.com/osis/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response wrapper with a typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse represents a simple success response without data
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CountData represents count data in response
type CountData struct {
	Count int64 `json:"count"`
}

// TaskData represents an asynchronous task handed back to the caller
type TaskData struct {
	TaskID string `json:"task_id"`
	Kind   string `json:"kind"`
}
