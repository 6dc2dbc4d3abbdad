package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values.
const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskOwnerIDEmpty is returned when a task's owner ID is empty or nil.
	ErrTaskOwnerIDEmpty = errors.New("task owner ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")
)

// Task represents a single unit of work owned by exactly one user.
// The owner is assigned at creation from the authenticated identity and
// never changes afterwards; TaskPatch deliberately carries no owner field.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Owner       *User        `json:"owner,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID, applies the default status
// (pending) and priority (medium) when none are supplied, and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewTask(
	ownerID uuid.UUID,
	title, description string,
	status TaskStatus,
	priority TaskPriority,
	dueDate *time.Time,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}

	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.OwnerID == uuid.Nil {
		return ErrTaskOwnerIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidStatus
	}

	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidPriority
	}

	return nil
}

// TaskPatch describes a partial update to a task. Only fields holding a
// non-zero value are applied; zero values leave the stored field untouched.
// A consequence is that a description cannot be cleared by sending an empty
// string. This matches the update contract exposed to clients.
type TaskPatch struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

// Apply merges the non-zero fields of the patch into the task and bumps
// the UpdatedAt timestamp. Returns an error if the merged result fails
// validation; the task is left unchanged in that case.
func (t *Task) Apply(patch TaskPatch) error {
	merged := *t

	if patch.Title != "" {
		merged.Title = patch.Title
	}
	if patch.Description != "" {
		merged.Description = patch.Description
	}
	if patch.Status != "" {
		merged.Status = patch.Status
	}
	if patch.Priority != "" {
		merged.Priority = patch.Priority
	}
	if patch.DueDate != nil {
		merged.DueDate = patch.DueDate
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	merged.UpdatedAt = time.Now().UTC()
	*t = merged
	return nil
}

// UpdateStatus overwrites only the task's status and bumps the UpdatedAt
// timestamp. Returns an error if the new status is invalid.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !IsValidTaskStatus(status) {
		return ErrInvalidStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidTaskPriority checks if the given priority is a valid TaskPriority.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}
