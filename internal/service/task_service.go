package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/platform/logger"
	"github.com/taskforge/taskforge-api/internal/queue"
	"github.com/taskforge/taskforge-api/internal/redact"
	"github.com/taskforge/taskforge-api/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// This is aligned with store.TaskStore to ensure proper separation of concerns.
type TaskRepository interface {
	// Create saves a new task to the store
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDForOwner retrieves a task by ID, restricted to the given owner
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List retrieves a page of tasks matching the filter plus the total count
	List(ctx context.Context, filter store.TaskFilter, offset, limit int) ([]*domain.Task, int64, error)

	// Update persists the full current state of the task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns the number of tasks per status
	CountByStatus(ctx context.Context) ([]store.StatusCount, error)
}

// CreateTaskInput carries the caller-supplied fields for a new task.
// Status and Priority default to pending/medium when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Data  []*domain.Task
	Count int
	Total int64
	Page  int
	Limit int
}

// TaskStats aggregates task counts per status. Unknown statuses observed in
// storage count toward Total but not toward any named bucket.
type TaskStats struct {
	Total      int64
	Completed  int64
	InProgress int64
	Pending    int64
}

// BatchAction names a bulk operation applied per task.
type BatchAction string

// Supported batch actions.
const (
	BatchActionComplete BatchAction = "complete"
	BatchActionDelete   BatchAction = "delete"
)

// BatchResult reports the outcome for one identifier of a batch operation.
type BatchResult struct {
	TaskID  string
	Success bool
	Result  *domain.Task
	Error   string
}

// TaskService provides task lifecycle operations.
type TaskService interface {
	// Create validates and persists a new task owned by ownerID, then
	// enqueues a status-change notification carrying the initial status.
	Create(ctx context.Context, input CreateTaskInput, ownerID uuid.UUID) (*domain.Task, error)

	// List returns one page of tasks matching the filter. Page is 1-based.
	List(ctx context.Context, filter store.TaskFilter, page, limit int) (*TaskPage, error)

	// Get retrieves a single task. With ownerID set, the lookup is
	// owner-scoped; ownerID == uuid.Nil is the privileged owner-agnostic
	// lookup for internal use.
	Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Update applies a partial patch to an owner-scoped task. If the
	// persisted update changes the status, exactly one status-change
	// notification is enqueued.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, ownerID uuid.UUID) (*domain.Task, error)

	// UpdateStatus overwrites only the status. Unlike Update it enqueues no
	// notification; it is a secondary internal path.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus, ownerID uuid.UUID) (*domain.Task, error)

	// Remove hard-deletes an owner-scoped task.
	Remove(ctx context.Context, id, ownerID uuid.UUID) error

	// Stats aggregates task counts per status across all owners.
	Stats(ctx context.Context) (*TaskStats, error)

	// BatchProcess applies the action to each identifier in order,
	// isolating per-item failures. The result list preserves input order.
	BatchProcess(ctx context.Context, taskIDs []string, action BatchAction, ownerID uuid.UUID) ([]BatchResult, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	producer queue.Producer
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskRepo TaskRepository,
	producer queue.Producer,
	logger *slog.Logger,
) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}
	if producer == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "producer cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		producer: producer,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// Create validates and persists a new task, then notifies the queue.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		ownerID,
		input.Title,
		input.Description,
		input.Status,
		input.Priority,
		input.DueDate,
	)
	if err != nil {
		log.Warn("failed to create task object",
			"error", err,
			"owner_id", ownerID)
		return nil, NewTaskServiceError("create_task", "failed to create task object", err)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		log.Error("failed to save task",
			"error", redact.Error(err),
			"task_id", task.ID,
			"owner_id", ownerID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created successfully",
		"task_id", task.ID,
		"owner_id", ownerID,
		"status", task.Status)

	// Notify with the just-created status. Delivery is best-effort: a queue
	// failure must never fail the create that already committed.
	s.notifyStatusChange(ctx, task)

	return task, nil
}

// List returns one page of tasks matching the filter.
func (s *taskServiceImpl) List(
	ctx context.Context,
	filter store.TaskFilter,
	page, limit int,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	tasks, total, err := s.taskRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		log.Error("failed to list tasks", "error", redact.Error(err))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return &TaskPage{
		Data:  tasks,
		Count: len(tasks),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Get retrieves a single task, owner-scoped unless ownerID is uuid.Nil.
func (s *taskServiceImpl) Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getTask(ctx, id, ownerID)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to retrieve task",
				"error", redact.Error(err),
				"task_id", id)
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// Update applies a partial patch and notifies the queue on status change.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getTask(ctx, id, ownerID)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to retrieve task", err)
	}

	originalStatus := task.Status

	if err := task.Apply(patch); err != nil {
		log.Warn("task patch failed validation",
			"error", err,
			"task_id", id)
		return nil, NewTaskServiceError("update_task", "invalid patch", err)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		log.Error("failed to save updated task",
			"error", redact.Error(err),
			"task_id", id)
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated successfully",
		"task_id", id,
		"status", task.Status)

	// Notify only on a confirmed status change, after the save succeeded.
	if originalStatus != task.Status {
		s.notifyStatusChange(ctx, task)
	}

	return task, nil
}

// UpdateStatus overwrites only the status. It deliberately enqueues no
// notification; Update is the notifying path.
func (s *taskServiceImpl) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getTask(ctx, id, ownerID)
	if err != nil {
		return nil, NewTaskServiceError("update_task_status", "failed to retrieve task", err)
	}

	if err := task.UpdateStatus(status); err != nil {
		log.Warn("invalid status for task",
			"error", err,
			"task_id", id,
			"status", status)
		return nil, NewTaskServiceError("update_task_status", "invalid status", err)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		log.Error("failed to save task status",
			"error", redact.Error(err),
			"task_id", id,
			"status", status)
		return nil, NewTaskServiceError("update_task_status", "failed to save task", err)
	}

	return task, nil
}

// Remove hard-deletes an owner-scoped task.
func (s *taskServiceImpl) Remove(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getTask(ctx, id, ownerID)
	if err != nil {
		return NewTaskServiceError("remove_task", "failed to retrieve task", err)
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		log.Error("failed to delete task",
			"error", redact.Error(err),
			"task_id", id)
		return NewTaskServiceError("remove_task", "failed to delete task", err)
	}

	log.Info("task removed successfully",
		"task_id", id,
		"owner_id", ownerID)
	return nil
}

// Stats aggregates task counts per status across all owners.
func (s *taskServiceImpl) Stats(ctx context.Context) (*TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	counts, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		log.Error("failed to aggregate task stats", "error", redact.Error(err))
		return nil, NewTaskServiceError("get_stats", "failed to aggregate task stats", err)
	}

	stats := &TaskStats{}
	for _, sc := range counts {
		// Unrecognized statuses still count toward the total, but must not
		// inflate any named bucket.
		switch sc.Status {
		case domain.TaskStatusCompleted:
			stats.Completed = sc.Count
		case domain.TaskStatusInProgress:
			stats.InProgress = sc.Count
		case domain.TaskStatusPending:
			stats.Pending = sc.Count
		}
		stats.Total += sc.Count
	}

	return stats, nil
}

// BatchProcess applies the action per identifier with per-item isolation.
func (s *taskServiceImpl) BatchProcess(
	ctx context.Context,
	taskIDs []string,
	action BatchAction,
	ownerID uuid.UUID,
) ([]BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	results := make([]BatchResult, 0, len(taskIDs))
	for _, rawID := range taskIDs {
		result := s.processBatchItem(ctx, rawID, action, ownerID)
		if !result.Success {
			log.Debug("batch item failed",
				"task_id", rawID,
				"action", action,
				"error", result.Error)
		}
		results = append(results, result)
	}

	return results, nil
}

// processBatchItem runs one batch action; failures are reported, not propagated.
func (s *taskServiceImpl) processBatchItem(
	ctx context.Context,
	rawID string,
	action BatchAction,
	ownerID uuid.UUID,
) BatchResult {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return BatchResult{TaskID: rawID, Error: "invalid task ID"}
	}

	switch action {
	case BatchActionComplete:
		task, err := s.Update(ctx, id, domain.TaskPatch{Status: domain.TaskStatusCompleted}, ownerID)
		if err != nil {
			return BatchResult{TaskID: rawID, Error: err.Error()}
		}
		return BatchResult{TaskID: rawID, Success: true, Result: task}

	case BatchActionDelete:
		if err := s.Remove(ctx, id, ownerID); err != nil {
			return BatchResult{TaskID: rawID, Error: err.Error()}
		}
		return BatchResult{TaskID: rawID, Success: true}

	default:
		return BatchResult{
			TaskID: rawID,
			Error:  fmt.Sprintf("%s: %q", ErrInvalidAction, action),
		}
	}
}

// getTask is the single lookup path behind every read and mutation.
// ownerID == uuid.Nil selects the privileged owner-agnostic lookup.
func (s *taskServiceImpl) getTask(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if ownerID == uuid.Nil {
		return s.taskRepo.GetByID(ctx, id)
	}
	return s.taskRepo.GetByIDForOwner(ctx, id, ownerID)
}

// notifyStatusChange enqueues a status-change job for the task. The contract
// is attempt, log, continue: failures are contained here and never reach the
// caller.
func (s *taskServiceImpl) notifyStatusChange(ctx context.Context, task *domain.Task) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.producer.Enqueue(ctx, queue.JobTaskStatusUpdate, queue.StatusChangePayload{
		TaskID: task.ID,
		Status: task.Status,
	})
	if err != nil {
		log.Error("failed to enqueue status-change notification",
			"error", redact.Error(err),
			"task_id", task.ID,
			"status", task.Status)
		return
	}

	log.Debug("status-change notification enqueued",
		"task_id", task.ID,
		"status", task.Status)
}
