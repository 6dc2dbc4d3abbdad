package service

import (
	"errors"
	"fmt"

	"github.com/taskforge/taskforge-api/internal/store"
)

// Common sentinel errors for TaskService
var (
	// ErrTaskNotFound indicates that the task does not exist or is owned by
	// another user. The two cases are deliberately indistinguishable so an
	// ownership mismatch never leaks existence information.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidAction indicates an unknown batch action string.
	ErrInvalidAction = errors.New("invalid batch action")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping, and maps
// store-level sentinels to their service-level equivalents.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
