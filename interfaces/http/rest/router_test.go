package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratagist-backend/infrastructure/config"
	"stratagist-backend/infrastructure/di"
	"stratagist-backend/interfaces/http/rest/handlers"
	pkgerrors "stratagist-backend/pkg/errors"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.LogLevel = "error"

	container, cleanup, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return NewRouter(container.CommandBus, container.QueryBus, container.Metrics, Options{
		EnableCORS:     true,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		EnableMetrics:  true,
	}, container.Logger).Setup()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/health", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stratagist_http_requests_total")
}

func TestThoughtLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// create
	rec := do(t, srv, http.MethodPost, "/api/thoughts", `{"content":"1. Buy milk\n2. Call mom"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[handlers.ThoughtWithTasksResponse](t, rec)
	assert.False(t, created.UsedAI)
	require.Len(t, created.ExtractedTasks, 2)
	assert.Equal(t, "Buy milk", created.ExtractedTasks[0].Title)
	assert.Equal(t, "Call mom", created.ExtractedTasks[1].Title)
	for _, task := range created.ExtractedTasks {
		require.NotNil(t, task.ThoughtID)
		assert.Equal(t, created.Thought.ID, *task.ThoughtID)
		assert.Equal(t, created.Thought.Timestamp, task.CreatedAt)
	}
	id := created.Thought.ID

	// extracted drafts are not persisted
	rec = do(t, srv, http.MethodGet, "/api/tasks", "")
	assert.Empty(t, decode[[]handlers.TaskResponse](t, rec))

	// get
	rec = do(t, srv, http.MethodGet, "/api/thoughts/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1. Buy milk\n2. Call mom", decode[handlers.ThoughtResponse](t, rec).Content)

	// replace
	rec = do(t, srv, http.MethodPut, "/api/thoughts/"+id, `{"content":"rewritten"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[handlers.ThoughtResponse](t, rec)
	assert.Equal(t, "rewritten", updated.Content)
	assert.Equal(t, created.Thought.Timestamp, updated.Timestamp)

	// dates
	rec = do(t, srv, http.MethodGet, "/api/thoughts/dates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{time.Now().Format("2006-01-02")}, decode[[]string](t, rec))

	// delete
	rec = do(t, srv, http.MethodDelete, "/api/thoughts/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, rec)["success"])

	rec = do(t, srv, http.MethodGet, "/api/thoughts/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decode[pkgerrors.ErrorResponse](t, rec)
	assert.Equal(t, string(pkgerrors.ErrorTypeNotFound), errBody.Type)
}

func TestThoughtsByDate(t *testing.T) {
	srv := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	do(t, srv, http.MethodPost, "/api/thoughts", `{"content":"first"}`)
	do(t, srv, http.MethodPost, "/api/thoughts", `{"content":"second"}`)

	rec := do(t, srv, http.MethodGet, "/api/thoughts/date/"+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]handlers.ThoughtResponse](t, rec)
	require.Len(t, listed, 2)
	assert.ElementsMatch(t, []string{"first", "second"}, []string{listed[0].Content, listed[1].Content})

	rec = do(t, srv, http.MethodGet, "/api/thoughts/date/not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/api/thoughts/date/"+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, cleared["success"])
	assert.Equal(t, 2.0, cleared["deleted_count"])

	rec = do(t, srv, http.MethodGet, "/api/thoughts", "")
	assert.Empty(t, decode[[]handlers.ThoughtResponse](t, rec))
}

func TestCreateThought_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing content", `{}`},
		{"malformed json", `{"content":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/thoughts", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := do(t, srv, http.MethodPost, "/api/thoughts", `{"content":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tasks", `{"title":"Write report","description":"q1","due_date":"2024-04-01T17:00:00Z","thought_id":"t-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	task := decode[handlers.TaskResponse](t, rec)
	assert.Equal(t, "Write report", task.Title)
	assert.False(t, task.IsCompleted)
	require.NotNil(t, task.DueDate)
	require.NotNil(t, task.ThoughtID)
	assert.Equal(t, "t-1", *task.ThoughtID)

	rec = do(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[handlers.TaskResponse](t, rec).IsCompleted)

	rec = do(t, srv, http.MethodPut, "/api/tasks/"+task.ID, `{"title":"Final report"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[handlers.TaskResponse](t, rec)
	assert.Equal(t, "Final report", updated.Title)
	assert.Equal(t, "q1", updated.Description)
	assert.True(t, updated.IsCompleted)

	rec = do(t, srv, http.MethodGet, "/api/tasks/"+task.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Final report", decode[handlers.TaskResponse](t, rec).Title)

	rec = do(t, srv, http.MethodDelete, "/api/tasks/"+task.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec = do(t, srv, method, "/api/tasks/"+task.ID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
	}
	rec = do(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTask_Validation(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tasks", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/tasks", `{"title":"x","due_date":"someday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/tasks", `{"title":"","due_date":"2024-04-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	task := decode[handlers.TaskResponse](t, rec)
	assert.Nil(t, task.ThoughtID)
	require.NotNil(t, task.DueDate)
	assert.True(t, strings.HasPrefix(*task.DueDate, "2024-04-01T00:00:00"))
}

func TestCreateTasksBulk(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tasks/bulk", `[{"title":"one"},{"title":"two"}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]handlers.TaskResponse](t, rec), 2)

	rec = do(t, srv, http.MethodGet, "/api/tasks", "")
	assert.Len(t, decode[[]handlers.TaskResponse](t, rec), 2)

	rec = do(t, srv, http.MethodPost, "/api/tasks/bulk", `[{"title":"ok"},{"description":"missing"}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractTasks(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/extract-tasks", `{"thought_id":"t-9","content":"- water plants\n- feed cat"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[handlers.ExtractTasksResponse](t, rec)
	assert.False(t, resp.UsedAI)
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "water plants", resp.Tasks[0].Title)
	assert.Equal(t, "t-9", *resp.Tasks[0].ThoughtID)

	rec = do(t, srv, http.MethodPost, "/api/extract-tasks", `{"content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/tasks", "")
	assert.Empty(t, decode[[]handlers.TaskResponse](t, rec))
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/thoughts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
