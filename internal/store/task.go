package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// TaskFilter narrows List queries. Zero-valued fields are ignored, so an
// empty filter matches every task.
type TaskFilter struct {
	// Status restricts results to tasks with exactly this status.
	Status domain.TaskStatus

	// Priority restricts results to tasks with exactly this priority.
	Priority domain.TaskPriority
}

// StatusCount is one row of the per-status aggregate.
type StatusCount struct {
	Status domain.TaskStatus
	Count  int64
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally and returns the resulting
	// validation error if the task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner.
	// This is the privileged lookup used by internal paths; handlers serving
	// user requests must use GetByIDForOwner instead.
	// Returns ErrTaskNotFound if the task does not exist.
	// The returned task has its Owner field populated.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDForOwner retrieves a task by ID, restricted to the given owner.
	// Returns ErrTaskNotFound both when the task does not exist and when it
	// exists under a different owner; callers cannot tell the two apart.
	// The returned task has its Owner field populated.
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List retrieves a page of tasks matching the filter, newest first,
	// with owner information joined. It returns the page of rows together
	// with the total number of matching rows ignoring pagination.
	List(ctx context.Context, filter TaskFilter, offset, limit int) ([]*domain.Task, int64, error)

	// Update persists the full current state of the task (last write wins;
	// concurrent updates to the same task are not detected).
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. This is a hard delete.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns the number of tasks per status across all
	// owners. Statuses with no tasks are absent from the result.
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}
