package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
	"github.com/hirebase/jobboard/internal/domain/model"
	"github.com/hirebase/jobboard/internal/mocks"
	"github.com/hirebase/jobboard/internal/service"
)

func newTestRouter(t *testing.T, auth AuthServiceInterface) (http.Handler, *mocks.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	jobRepo := mocks.NewMockJobRepository(ctrl)
	appRepo := mocks.NewMockApplicationRepository(ctrl)

	router := NewRouter(RouterServices{
		Jobs:         service.MustNewJobService(service.JobServiceOptions{Repo: jobRepo}),
		Applications: service.MustNewApplicationService(service.ApplicationServiceOptions{Repo: appRepo}),
		Auth:         auth,
		Logger:       testLogger(),
	})
	return router, jobRepo
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_ListJobsIsPublic(t *testing.T) {
	router, jobRepo := newTestRouter(t, &mockAuthService{})
	jobRepo.EXPECT().List(gomock.Any()).Return([]*model.Job{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CreateJobRequiresAdmin(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CreateJobForbiddenForUserRole(t *testing.T) {
	auth := &mockAuthService{
		getSessionFunc: func(_ context.Context, id string) (*domainauth.Session, error) {
			s := testSession(id)
			s.Role = domainauth.RoleUser
			return s, nil
		},
	}
	router, _ := newTestRouter(t, auth)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_DashboardRedirectsAnonymousBrowser(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard", w.Header().Get("Location"))
}

func TestRouter_PostLoginForwardsToSignIn(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/auth/signin", w.Header().Get("Location"))
}

func TestRouter_UnknownBrowserPathRendersErrorPage(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "404")
}

func TestRouter_UnknownAPIPathReturnsJSON(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/no-such-endpoint", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestRouter_StaticAssetServed(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}
