package api

import (
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Title       string     `json:"title"                 validate:"required,min=1,max=500"`
	Description string     `json:"description,omitempty" validate:"max=5000"`
	Status      string     `json:"status,omitempty"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    string     `json:"priority,omitempty"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task.
// All fields are optional; empty fields leave the stored value unchanged.
type UpdateTaskRequest struct {
	Title       string     `json:"title,omitempty"       validate:"max=500"`
	Description string     `json:"description,omitempty" validate:"max=5000"`
	Status      string     `json:"status,omitempty"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    string     `json:"priority,omitempty"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// BatchTaskRequest represents the request body for batch task operations
type BatchTaskRequest struct {
	TaskIDs []string `json:"tasks"  validate:"required,min=1,max=100"`
	Action  string   `json:"action" validate:"required"`
}

// OwnerResponse represents the owning user embedded in a task response
type OwnerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Owner       *OwnerResponse `json:"owner,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TaskListResponse represents a page of tasks with pagination metadata
type TaskListResponse struct {
	Data  []TaskResponse `json:"data"`
	Count int            `json:"count"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// TaskStatsResponse represents aggregate task counts by status
type TaskStatsResponse struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
	Pending    int64 `json:"pending"`
}

// BatchResultResponse represents the outcome of one item in a batch request
type BatchResultResponse struct {
	TaskID  string        `json:"task_id"`
	Success bool          `json:"success"`
	Result  *TaskResponse `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		OwnerID:     task.OwnerID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Owner != nil {
		resp.Owner = &OwnerResponse{
			ID:    task.Owner.ID.String(),
			Email: task.Owner.Email,
		}
	}
	return resp
}

// statsToResponse converts service.TaskStats to a TaskStatsResponse
func statsToResponse(stats service.TaskStats) TaskStatsResponse {
	return TaskStatsResponse{
		Total:      stats.Total,
		Completed:  stats.Completed,
		InProgress: stats.InProgress,
		Pending:    stats.Pending,
	}
}

// batchResultToResponse converts a service.BatchResult to a BatchResultResponse
func batchResultToResponse(result service.BatchResult) BatchResultResponse {
	resp := BatchResultResponse{
		TaskID:  result.TaskID,
		Success: result.Success,
		Error:   result.Error,
	}
	if result.Result != nil {
		taskResp := taskToResponse(result.Result)
		resp.Result = &taskResp
	}
	return resp
}
