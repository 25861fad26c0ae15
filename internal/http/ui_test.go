package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
)

// mockJobsPageService is a func-field test double for JobsPageService.
type mockJobsPageService struct {
	listFunc       func(ctx context.Context) ([]*model.Job, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.Job, error)
	createFunc     func(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	deleteFunc     func(ctx context.Context, id string) (int64, error)
	deleteManyFunc func(ctx context.Context, ids []string) (int64, error)
}

func (m *mockJobsPageService) List(ctx context.Context) ([]*model.Job, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.Job{sampleJob("job-1")}, nil
}

func (m *mockJobsPageService) GetByID(ctx context.Context, id string) (*model.Job, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return sampleJob(id), nil
}

func (m *mockJobsPageService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return sampleJob("job-new"), nil
}

func (m *mockJobsPageService) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return 1, nil
}

func (m *mockJobsPageService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if m.deleteManyFunc != nil {
		return m.deleteManyFunc(ctx, ids)
	}
	return int64(len(ids)), nil
}

// mockApplicationsPageService is a func-field test double for ApplicationsPageService.
type mockApplicationsPageService struct {
	hasAppliedFunc func(ctx context.Context, jobID, userID string) (bool, error)
	applyFunc      func(ctx context.Context, req *model.ApplyRequest) (*model.Application, error)
}

func (m *mockApplicationsPageService) HasApplied(ctx context.Context, jobID, userID string) (bool, error) {
	if m.hasAppliedFunc != nil {
		return m.hasAppliedFunc(ctx, jobID, userID)
	}
	return false, nil
}

func (m *mockApplicationsPageService) Apply(
	ctx context.Context,
	req *model.ApplyRequest,
) (*model.Application, error) {
	if m.applyFunc != nil {
		return m.applyFunc(ctx, req)
	}
	return &model.Application{ID: "app-1", JobID: req.JobID, UserID: req.UserID}, nil
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     testLogger(),
	})
	require.NoError(t, err)
	return tr
}

func newUIHandlers(t *testing.T) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		T:      newTestRenderer(t),
		Jobs:   &mockJobsPageService{},
		Apps:   &mockApplicationsPageService{},
		Logger: testLogger(),
	}
}

func withSession(r *http.Request, role domainauth.Role) *http.Request {
	s := testSession("sess-1")
	s.Role = role
	return r.WithContext(SetSessionInContext(r.Context(), s))
}

func TestUIHandlers_Landing(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.Landing(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Your next role is waiting")
}

func TestUIHandlers_Landing_UnknownPathIs404(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	h.Landing(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUIHandlers_LoginPage_RedirectsAuthenticatedUser(t *testing.T) {
	h := newUIHandlers(t)
	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil), domainauth.RoleUser)
	w := httptest.NewRecorder()

	h.LoginPage(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestUIHandlers_LoginPage_ShowsErrorFromQuery(t *testing.T) {
	h := newUIHandlers(t)
	target := "/login?error=" + url.QueryEscape("Invalid email or password") + "&redirect_uri=%2Fdashboard"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	h.LoginPage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Invalid email or password")
	assert.Contains(t, body, `value="/dashboard"`)
}

func TestUIHandlers_SignupPage(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/signup", nil)
	w := httptest.NewRecorder()

	h.SignupPage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/auth/signup")
}

func TestUIHandlers_Dashboard_ListsJobs(t *testing.T) {
	h := newUIHandlers(t)
	req := withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), domainauth.RoleUser)
	w := httptest.NewRecorder()

	h.Dashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Backend Engineer")
	assert.Contains(t, body, "Acme")
}

func TestUIHandlers_Dashboard_ListFailureShowsInlineError(t *testing.T) {
	h := newUIHandlers(t)
	h.Jobs = &mockJobsPageService{
		listFunc: func(context.Context) ([]*model.Job, error) {
			return nil, apperrors.Transport("db down")
		},
	}
	req := withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), domainauth.RoleUser)
	w := httptest.NewRecorder()

	h.Dashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to load jobs right now")
}

func TestUIHandlers_SignedOut(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/auth/signed-out?redirect_uri=%2Fdashboard", nil)
	w := httptest.NewRecorder()

	h.SignedOut(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// html/template escapes the attribute value, so the slash arrives as %2f.
	assert.Contains(t, w.Body.String(), "/login?redirect_uri=%2fdashboard")
}

func TestUIHandlers_ApplicationForm_MissingIDIs404(t *testing.T) {
	h := newUIHandlers(t)
	req := withSession(httptest.NewRequest(http.MethodGet, "/application", nil), domainauth.RoleUser)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	h.ApplicationForm(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUIHandlers_ApplicationForm_RedirectsAnonymousToLogin(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/application?id=job-1", nil)
	w := httptest.NewRecorder()

	h.ApplicationForm(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?redirect_uri=")
}

func TestUIHandlers_ApplicationForm_RendersJob(t *testing.T) {
	h := newUIHandlers(t)
	req := withSession(httptest.NewRequest(http.MethodGet, "/application?id=job-1", nil), domainauth.RoleUser)
	w := httptest.NewRecorder()

	h.ApplicationForm(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Backend Engineer")
	assert.Contains(t, body, `name="job_id"`)
}

func TestUIHandlers_ApplicationForm_UnknownJobIs404(t *testing.T) {
	h := newUIHandlers(t)
	h.Jobs = &mockJobsPageService{
		getByIDFunc: func(context.Context, string) (*model.Job, error) {
			return nil, apperrors.NotFound("job not found")
		},
	}
	req := withSession(httptest.NewRequest(http.MethodGet, "/application?id=bogus", nil), domainauth.RoleUser)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	h.ApplicationForm(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUIHandlers_ApplicationForm_AlreadyApplied(t *testing.T) {
	h := newUIHandlers(t)
	h.Apps = &mockApplicationsPageService{
		hasAppliedFunc: func(context.Context, string, string) (bool, error) {
			return true, nil
		},
	}
	req := withSession(httptest.NewRequest(http.MethodGet, "/application?id=job-1", nil), domainauth.RoleUser)
	w := httptest.NewRecorder()

	h.ApplicationForm(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already applied")
}

func TestUIHandlers_ApplicationSubmit_Success(t *testing.T) {
	h := newUIHandlers(t)
	var captured *model.ApplyRequest
	h.Apps = &mockApplicationsPageService{
		applyFunc: func(_ context.Context, req *model.ApplyRequest) (*model.Application, error) {
			captured = req
			return &model.Application{ID: "app-1", JobID: req.JobID, UserID: req.UserID}, nil
		},
	}
	form := strings.NewReader("job_id=job-1")
	req := withSession(httptest.NewRequest(http.MethodPost, "/application", form), domainauth.RoleUser)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.ApplicationSubmit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Application sent")
	require.NotNil(t, captured)
	assert.Equal(t, "job-1", captured.JobID)
	assert.Equal(t, "test-user", captured.UserID)
}

func TestUIHandlers_ApplicationSubmit_DuplicateShowsAlreadyApplied(t *testing.T) {
	h := newUIHandlers(t)
	h.Apps = &mockApplicationsPageService{
		applyFunc: func(context.Context, *model.ApplyRequest) (*model.Application, error) {
			return nil, apperrors.Conflict("application already exists")
		},
	}
	form := strings.NewReader("job_id=job-1")
	req := withSession(httptest.NewRequest(http.MethodPost, "/application", form), domainauth.RoleUser)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.ApplicationSubmit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already applied")
}

func TestUIHandlers_AdminDashboard(t *testing.T) {
	h := newUIHandlers(t)
	req := withSession(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), domainauth.RoleAdmin)
	w := httptest.NewRecorder()

	h.AdminDashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Manage jobs")
	assert.Contains(t, body, "Backend Engineer")
}

func TestUIHandlers_AdminCreateJob_RedirectsOnSuccess(t *testing.T) {
	h := newUIHandlers(t)
	var captured *model.CreateJobRequest
	h.Jobs = &mockJobsPageService{
		createFunc: func(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			captured = req
			return sampleJob("job-new"), nil
		},
	}
	form := strings.NewReader("title=SRE&company=Acme&description=Keep+it+up")
	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/jobs", form), domainauth.RoleAdmin)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.AdminCreateJob(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	require.NotNil(t, captured)
	assert.Equal(t, "SRE", captured.Title)
	require.NotNil(t, captured.CreatedBy)
	assert.Equal(t, "test-user", *captured.CreatedBy)
}

func TestUIHandlers_AdminCreateJob_ValidationErrorRendersInline(t *testing.T) {
	h := newUIHandlers(t)
	h.Jobs = &mockJobsPageService{
		createFunc: func(context.Context, *model.CreateJobRequest) (*model.Job, error) {
			return nil, apperrors.Validation("title is required and cannot be empty")
		},
	}
	form := strings.NewReader("title=&company=Acme&description=x")
	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/jobs", form), domainauth.RoleAdmin)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.AdminCreateJob(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "title is required")
	assert.Contains(t, body, `value="Acme"`)
}

func TestUIHandlers_AdminDeleteJob(t *testing.T) {
	h := newUIHandlers(t)
	var deletedID string
	h.Jobs = &mockJobsPageService{
		deleteFunc: func(_ context.Context, id string) (int64, error) {
			deletedID = id
			return 1, nil
		},
	}
	form := strings.NewReader("id=job-1")
	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/jobs/delete", form), domainauth.RoleAdmin)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.AdminDeleteJob(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "job-1", deletedID)
}

func TestUIHandlers_AdminBatchDeleteJobs(t *testing.T) {
	h := newUIHandlers(t)
	var captured []string
	h.Jobs = &mockJobsPageService{
		deleteManyFunc: func(_ context.Context, ids []string) (int64, error) {
			captured = ids
			return int64(len(ids)), nil
		},
	}
	form := strings.NewReader("ids=job-1&ids=job-2")
	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/jobs/batch-delete", form), domainauth.RoleAdmin)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.AdminBatchDeleteJobs(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"job-1", "job-2"}, captured)
}

func TestUIHandlers_AdminBatchDeleteJobs_CommaSeparated(t *testing.T) {
	h := newUIHandlers(t)
	var captured []string
	h.Jobs = &mockJobsPageService{
		deleteManyFunc: func(_ context.Context, ids []string) (int64, error) {
			captured = ids
			return int64(len(ids)), nil
		},
	}
	form := strings.NewReader("ids=job-1%2Cjob-2")
	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/jobs/batch-delete", form), domainauth.RoleAdmin)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.AdminBatchDeleteJobs(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"job-1", "job-2"}, captured)
}

func TestUIHandlers_NotFound_API(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()

	h.NotFound(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestUIHandlers_NotFound_Browser(t *testing.T) {
	h := newUIHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	h.NotFound(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}
