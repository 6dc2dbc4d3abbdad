package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "42", body["id"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes trace ID when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusNotFound, "Task not found")

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Task not found", resp.Error)
		assert.NotEmpty(t, resp.TraceID)
	})

	t.Run("omits trace ID when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Empty(t, resp.TraceID)
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	internalErr := errors.New("pq: password authentication failed for user admin")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"An unexpected error occurred", internalErr)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// The raw error must never appear in the response body.
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.NotContains(t, rec.Body.String(), "password")
}
