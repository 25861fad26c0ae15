package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hirebase/jobboard/internal/domain/model"
	"github.com/hirebase/jobboard/internal/service"
)

// JobsPageService is a minimal interface for UI needs.
type JobsPageService interface {
	List(ctx context.Context) ([]*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// ApplicationsPageService is a minimal interface for UI needs.
type ApplicationsPageService interface {
	HasApplied(ctx context.Context, jobID, userID string) (bool, error)
	Apply(ctx context.Context, req *model.ApplyRequest) (*model.Application, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ JobsPageService         = (*service.JobService)(nil)
	_ ApplicationsPageService = (*service.ApplicationService)(nil)
	_ AuthServiceInterface    = (*service.AuthService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T      *TemplateRenderer
	Jobs   JobsPageService
	Apps   ApplicationsPageService
	IsDev  bool // Development mode flag for enhanced error reporting
	Logger *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderPage renders a full page and logs render failures.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if h.T == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := h.T.RenderPage(w, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "page render failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
	} else {
		h.renderAPINotFound(w, r)
	}
}

// renderBrowserNotFound renders an HTML 404 page with auth-aware content.
func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	isAuthenticated := session != nil

	data := map[string]any{
		"Title":           "Page Not Found - Hirebase",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": isAuthenticated,
		"ShowLogin":       !isAuthenticated,
		"RedirectURI":     r.URL.RequestURI(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T != nil {
		if err := h.T.RenderError(w, r, data); err != nil {
			http.Error(w, "Page not found", http.StatusNotFound)
		}
	} else {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}

// renderAPINotFound renders a JSON 404 response.
func (h *UIHandlers) renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}
