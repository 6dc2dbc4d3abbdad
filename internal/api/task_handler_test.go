package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/api"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/store"
)

func newHandler(svc *mocks.MockTaskService) *api.TaskHandler {
	return api.NewTaskHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTask(t *testing.T, ownerID uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(ownerID, "Ship release", "cut and tag", "", "", nil)
	require.NoError(t, err)
	return task
}

// authedJSONRequest builds a request carrying the authenticated user and an
// optional JSON body.
func authedJSONRequest(
	t *testing.T,
	method, target string,
	body any,
	userID uuid.UUID,
) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if userID != uuid.Nil {
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		req = req.WithContext(ctx)
	}
	return req
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateTask(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates task and returns 201", func(t *testing.T) {
		var gotInput service.CreateTaskInput
		svc := &mocks.MockTaskService{
			CreateFn: func(ctx context.Context, input service.CreateTaskInput, owner uuid.UUID) (*domain.Task, error) {
				gotInput = input
				assert.Equal(t, ownerID, owner)
				return domain.NewTask(owner, input.Title, input.Description, input.Status, input.Priority, input.DueDate)
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":    "Ship release",
			"priority": "HIGH",
		}, ownerID)
		rec := httptest.NewRecorder()

		handler.CreateTask(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Ship release", gotInput.Title)
		assert.Equal(t, domain.TaskPriorityHigh, gotInput.Priority)

		var resp api.TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Ship release", resp.Title)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, ownerID.String(), resp.OwnerID)
	})

	t.Run("missing title is rejected with 400", func(t *testing.T) {
		called := false
		svc := &mocks.MockTaskService{
			CreateFn: func(ctx context.Context, input service.CreateTaskInput, owner uuid.UUID) (*domain.Task, error) {
				called = true
				return nil, nil
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t, http.MethodPost, "/api/tasks",
			map[string]any{"description": "no title"}, ownerID)
		rec := httptest.NewRecorder()

		handler.CreateTask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
	})

	t.Run("invalid status enum is rejected with 400", func(t *testing.T) {
		handler := newHandler(&mocks.MockTaskService{})

		req := authedJSONRequest(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":  "Ship release",
			"status": "DONE",
		}, ownerID)
		rec := httptest.NewRecorder()

		handler.CreateTask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated request gets 401", func(t *testing.T) {
		handler := newHandler(&mocks.MockTaskService{})

		req := authedJSONRequest(t, http.MethodPost, "/api/tasks",
			map[string]any{"title": "Ship release"}, uuid.Nil)
		rec := httptest.NewRecorder()

		handler.CreateTask(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body gets 400", func(t *testing.T) {
		handler := newHandler(&mocks.MockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/api/tasks",
			bytes.NewBufferString("{not json"))
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, ownerID))
		rec := httptest.NewRecorder()

		handler.CreateTask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListTasks(t *testing.T) {
	ownerID := uuid.New()

	t.Run("returns page with metadata", func(t *testing.T) {
		task := newTask(t, ownerID)
		svc := &mocks.MockTaskService{
			ListFn: func(ctx context.Context, filter store.TaskFilter, page, limit int) (*service.TaskPage, error) {
				assert.Equal(t, 2, page)
				assert.Equal(t, 5, limit)
				assert.Equal(t, domain.TaskStatusPending, filter.Status)
				return &service.TaskPage{
					Data:  []*domain.Task{task},
					Count: 1,
					Total: 6,
					Page:  2,
					Limit: 5,
				}, nil
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t,
			http.MethodGet, "/api/tasks?page=2&limit=5&status=PENDING", nil, ownerID)
		rec := httptest.NewRecorder()

		handler.ListTasks(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, int64(6), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 5, resp.Limit)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, task.ID.String(), resp.Data[0].ID)
	})

	t.Run("defaults page and limit when absent or garbage", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			ListFn: func(ctx context.Context, filter store.TaskFilter, page, limit int) (*service.TaskPage, error) {
				assert.Equal(t, 1, page)
				assert.Equal(t, 10, limit)
				return &service.TaskPage{Data: []*domain.Task{}, Page: 1, Limit: 10}, nil
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t, http.MethodGet, "/api/tasks?page=zero&limit=-3", nil, ownerID)
		rec := httptest.NewRecorder()

		handler.ListTasks(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bogus status filter gets 400", func(t *testing.T) {
		handler := newHandler(&mocks.MockTaskService{})

		req := authedJSONRequest(t, http.MethodGet, "/api/tasks?status=DONE", nil, ownerID)
		rec := httptest.NewRecorder()

		handler.ListTasks(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTaskStats(t *testing.T) {
	svc := &mocks.MockTaskService{
		StatsFn: func(ctx context.Context) (*service.TaskStats, error) {
			return &service.TaskStats{Total: 10, Completed: 4, InProgress: 3, Pending: 3}, nil
		},
	}
	handler := newHandler(svc)

	req := authedJSONRequest(t, http.MethodGet, "/api/tasks/stats", nil, uuid.New())
	rec := httptest.NewRecorder()

	handler.GetTaskStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TaskStatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(10), resp.Total)
	assert.Equal(t, int64(4), resp.Completed)
	assert.Equal(t, int64(3), resp.InProgress)
	assert.Equal(t, int64(3), resp.Pending)
}

func TestGetTask(t *testing.T) {
	ownerID := uuid.New()

	t.Run("returns owned task", func(t *testing.T) {
		task := newTask(t, ownerID)
		svc := &mocks.MockTaskService{
			GetFn: func(ctx context.Context, id, owner uuid.UUID) (*domain.Task, error) {
				assert.Equal(t, task.ID, id)
				assert.Equal(t, ownerID, owner)
				return task, nil
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t, http.MethodGet, "/api/tasks/"+task.ID.String(), nil, ownerID)
		req = withURLParam(req, "id", task.ID.String())
		rec := httptest.NewRecorder()

		handler.GetTask(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing task gets 404 with a generic message", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			GetFn: func(ctx context.Context, id, owner uuid.UUID) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}
		handler := newHandler(svc)

		id := uuid.New()
		req := authedJSONRequest(t, http.MethodGet, "/api/tasks/"+id.String(), nil, ownerID)
		req = withURLParam(req, "id", id.String())
		rec := httptest.NewRecorder()

		handler.GetTask(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Task not found", resp.Error)
	})

	t.Run("malformed id gets 400", func(t *testing.T) {
		handler := newHandler(&mocks.MockTaskService{})

		req := authedJSONRequest(t, http.MethodGet, "/api/tasks/nope", nil, ownerID)
		req = withURLParam(req, "id", "nope")
		rec := httptest.NewRecorder()

		handler.GetTask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateTask(t *testing.T) {
	ownerID := uuid.New()

	t.Run("applies patch and returns updated task", func(t *testing.T) {
		task := newTask(t, ownerID)
		svc := &mocks.MockTaskService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, owner uuid.UUID) (*domain.Task, error) {
				assert.Equal(t, domain.TaskStatusCompleted, patch.Status)
				assert.Empty(t, patch.Title)
				if err := task.Apply(patch); err != nil {
					return nil, err
				}
				return task, nil
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t, http.MethodPatch, "/api/tasks/"+task.ID.String(),
			map[string]any{"status": "COMPLETED"}, ownerID)
		req = withURLParam(req, "id", task.ID.String())
		rec := httptest.NewRecorder()

		handler.UpdateTask(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "COMPLETED", resp.Status)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, owner uuid.UUID) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}
		handler := newHandler(svc)

		id := uuid.New()
		req := authedJSONRequest(t, http.MethodPatch, "/api/tasks/"+id.String(),
			map[string]any{"title": "renamed"}, ownerID)
		req = withURLParam(req, "id", id.String())
		rec := httptest.NewRecorder()

		handler.UpdateTask(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	ownerID := uuid.New()

	t.Run("returns 204 on success", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			RemoveFn: func(ctx context.Context, id, owner uuid.UUID) error {
				return nil
			},
		}
		handler := newHandler(svc)

		id := uuid.New()
		req := authedJSONRequest(t, http.MethodDelete, "/api/tasks/"+id.String(), nil, ownerID)
		req = withURLParam(req, "id", id.String())
		rec := httptest.NewRecorder()

		handler.DeleteTask(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			RemoveFn: func(ctx context.Context, id, owner uuid.UUID) error {
				return service.ErrTaskNotFound
			},
		}
		handler := newHandler(svc)

		id := uuid.New()
		req := authedJSONRequest(t, http.MethodDelete, "/api/tasks/"+id.String(), nil, ownerID)
		req = withURLParam(req, "id", id.String())
		rec := httptest.NewRecorder()

		handler.DeleteTask(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBatchProcessTasks(t *testing.T) {
	ownerID := uuid.New()

	t.Run("returns per-item results in order", func(t *testing.T) {
		task := newTask(t, ownerID)
		svc := &mocks.MockTaskService{
			BatchProcessFn: func(ctx context.Context, taskIDs []string, action service.BatchAction, owner uuid.UUID) ([]service.BatchResult, error) {
				assert.Equal(t, service.BatchActionComplete, action)
				return []service.BatchResult{
					{TaskID: taskIDs[0], Success: true, Result: task},
					{TaskID: taskIDs[1], Success: false, Error: "task not found"},
				}, nil
			},
		}
		handler := newHandler(svc)

		req := authedJSONRequest(t, http.MethodPost, "/api/tasks/batch", map[string]any{
			"tasks":  []string{task.ID.String(), uuid.New().String()},
			"action": "complete",
		}, ownerID)
		rec := httptest.NewRecorder()

		handler.BatchProcessTasks(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []api.BatchResultResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 2)
		assert.True(t, resp[0].Success)
		require.NotNil(t, resp[0].Result)
		assert.False(t, resp[1].Success)
		assert.Equal(t, "task not found", resp[1].Error)
	})

	t.Run("empty id list is rejected with 400", func(t *testing.T) {
		handler := newHandler(&mocks.MockTaskService{})

		req := authedJSONRequest(t, http.MethodPost, "/api/tasks/batch", map[string]any{
			"tasks":  []string{},
			"action": "complete",
		}, ownerID)
		rec := httptest.NewRecorder()

		handler.BatchProcessTasks(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
