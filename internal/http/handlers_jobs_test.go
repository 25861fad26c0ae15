package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
	"github.com/hirebase/jobboard/internal/mocks"
	"github.com/hirebase/jobboard/internal/service"
)

func newJobHandlers(t *testing.T) (*JobHandlers, *mocks.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJobRepository(ctrl)
	svc := service.MustNewJobService(service.JobServiceOptions{Repo: repo})
	return &JobHandlers{Svc: svc}, repo
}

func sampleJob(id string) *model.Job {
	desc := "Build things"
	return &model.Job{
		ID:          id,
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: &desc,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestJobHandlers_List(t *testing.T) {
	handlers, repo := newJobHandlers(t)
	repo.EXPECT().List(gomock.Any()).Return([]*model.Job{sampleJob("job-1"), sampleJob("job-2")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	w := httptest.NewRecorder()

	handlers.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var jobs []*model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 2)
	assert.Equal(t, "job-1", jobs[0].ID)
}

func TestJobHandlers_Get_NotFound(t *testing.T) {
	handlers, repo := newJobHandlers(t)
	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, apperrors.NotFound("job not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handlers.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestJobHandlers_Get_Success(t *testing.T) {
	handlers, repo := newJobHandlers(t)
	repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(sampleJob("job-1"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil)
	req.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	handlers.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var job model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "Backend Engineer", job.Title)
}

func TestJobHandlers_Create_TakesCreatedByFromSession(t *testing.T) {
	handlers, repo := newJobHandlers(t)
	var captured *model.CreateJobRequest
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			captured = req
			return sampleJob("job-new"), nil
		})

	body, err := json.Marshal(map[string]string{
		"title":       "Backend Engineer",
		"company":     "Acme",
		"description": "Build things",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(body))
	session := testSession("sess-1")
	req = req.WithContext(SetSessionInContext(req.Context(), session))
	w := httptest.NewRecorder()

	handlers.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, captured)
	require.NotNil(t, captured.CreatedBy)
	assert.Equal(t, session.UserID, *captured.CreatedBy)
}

func TestJobHandlers_Create_RejectsUnknownFields(t *testing.T) {
	handlers, _ := newJobHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs",
		bytes.NewReader([]byte(`{"title":"x","company":"y","description":"z","created_by":"attacker"}`)))
	w := httptest.NewRecorder()

	handlers.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_json")
}

func TestJobHandlers_Delete_Idempotent(t *testing.T) {
	handlers, repo := newJobHandlers(t)
	repo.EXPECT().Delete(gomock.Any(), "gone").Return(int64(0), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/jobs/gone", nil)
	req.SetPathValue("id", "gone")
	w := httptest.NewRecorder()

	handlers.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":0}`, w.Body.String())
}

func TestJobHandlers_BatchDelete(t *testing.T) {
	handlers, repo := newJobHandlers(t)
	repo.EXPECT().DeleteMany(gomock.Any(), []string{"job-1", "job-2"}).Return(int64(2), nil)

	body := []byte(`{"ids":["job-1","job-2","job-1",""]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/batch-delete", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handlers.BatchDelete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())
}

func TestJobHandlers_BatchDelete_EmptyList(t *testing.T) {
	handlers, _ := newJobHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/batch-delete", bytes.NewReader([]byte(`{"ids":[]}`)))
	w := httptest.NewRecorder()

	handlers.BatchDelete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":0}`, w.Body.String())
}
