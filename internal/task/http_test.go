package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcal/internal/model"
)

func newTestRouter(repo Repo) *mux.Router {
	h := NewHandler(repo)
	r := mux.NewRouter()
	r.HandleFunc("/api/tasks", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{id}/copy", h.Copy).Methods(http.MethodPost)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTasksCreateAndList(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	rec := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"taskName":  "주간 회의 준비",
		"category1": "업무",
		"endDate":   "2024-06-07",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusPending, created.Status)

	rec = doJSON(t, r, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestTasksCreateRejectsEmptyName(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	rec := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{"taskName": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasksCreateRejectsReversedDates(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	rec := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"taskName":  "x",
		"startDate": "2024-06-10",
		"endDate":   "2024-06-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasksUpdateMergesAndIgnoresBodyID(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	created, err := repo.Create(model.Task{TaskName: "원본", Description: "desc"})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPut, "/api/tasks/"+string(created.ID), map[string]any{
		"id":     "spoofed",
		"status": "완료",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, model.StatusDone, updated.Status)
	assert.Equal(t, "원본", updated.TaskName)
	assert.Equal(t, "desc", updated.Description)
}

func TestTasksUpdateMissingIs404(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	rec := doJSON(t, r, http.MethodPut, "/api/tasks/absent", map[string]any{"status": "완료"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestTasksDelete(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	created, err := repo.Create(model.Task{TaskName: "x"})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasksCopy(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	created, err := repo.Create(model.Task{TaskName: "보고서", Category1: "업무"})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks/"+string(created.ID)+"/copy", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var dup model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
	assert.NotEqual(t, created.ID, dup.ID)
	assert.Equal(t, "보고서 (복사본)", dup.TaskName)
	assert.Equal(t, "업무", dup.Category1)

	list, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTasksSearchEndpoint(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	for i := 0; i < 7; i++ {
		_, err := repo.Create(model.Task{TaskName: fmt.Sprintf("업무 %d", i)})
		require.NoError(t, err)
	}
	_, err := repo.Create(model.Task{TaskName: "회의", Status: model.StatusDone})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/tasks/search?q=업무&page=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Tasks      []model.Task `json:"tasks"`
		Total      int          `json:"total"`
		Page       int          `json:"page"`
		TotalPages int          `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 7, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Tasks, 2)

	rec = doJSON(t, r, http.MethodGet, "/api/tasks/search?status=완료", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
}

func TestTasksChangeHookFires(t *testing.T) {
	repo := NewMemoryRepo()
	h := NewHandler(repo)
	var fired []string
	h.SetOnChange(func(action string) { fired = append(fired, action) })

	r := mux.NewRouter()
	r.HandleFunc("/api/tasks", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}", h.Delete).Methods(http.MethodDelete)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{"taskName": "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"created"}, fired)

	// a rejected create must not fire the hook
	rec = doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{"taskName": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"created"}, fired)

	var created model.Task
	require.NoError(t, json.Unmarshal(doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{"taskName": "y"}).Body.Bytes(), &created))
	rec = doJSON(t, r, http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"created", "created", "deleted"}, fired)
}
