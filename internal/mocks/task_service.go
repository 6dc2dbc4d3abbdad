package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/store"
)

// MockTaskService implements service.TaskService for testing.
// Each operation delegates to the corresponding Fn field; unset
// functions return zero values.
type MockTaskService struct {
	CreateFn       func(ctx context.Context, input service.CreateTaskInput, ownerID uuid.UUID) (*domain.Task, error)
	ListFn         func(ctx context.Context, filter store.TaskFilter, page, limit int) (*service.TaskPage, error)
	GetFn          func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	UpdateFn       func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, ownerID uuid.UUID) (*domain.Task, error)
	UpdateStatusFn func(ctx context.Context, id uuid.UUID, status domain.TaskStatus, ownerID uuid.UUID) (*domain.Task, error)
	RemoveFn       func(ctx context.Context, id, ownerID uuid.UUID) error
	StatsFn        func(ctx context.Context) (*service.TaskStats, error)
	BatchProcessFn func(ctx context.Context, taskIDs []string, action service.BatchAction, ownerID uuid.UUID) ([]service.BatchResult, error)
}

func (m *MockTaskService) Create(
	ctx context.Context,
	input service.CreateTaskInput,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) List(
	ctx context.Context,
	filter store.TaskFilter,
	page, limit int,
) (*service.TaskPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page, limit)
	}
	return &service.TaskPage{}, nil
}

func (m *MockTaskService) Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) Remove(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, id, ownerID)
	}
	return nil
}

func (m *MockTaskService) Stats(ctx context.Context) (*service.TaskStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return &service.TaskStats{}, nil
}

func (m *MockTaskService) BatchProcess(
	ctx context.Context,
	taskIDs []string,
	action service.BatchAction,
	ownerID uuid.UUID,
) ([]service.BatchResult, error) {
	if m.BatchProcessFn != nil {
		return m.BatchProcessFn(ctx, taskIDs, action, ownerID)
	}
	return nil, nil
}

// Ensure MockTaskService implements the interface
var _ service.TaskService = (*MockTaskService)(nil)
