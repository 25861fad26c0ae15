package httpx

import (
	"net/http"
	"strings"

	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
)

// AdminDashboard renders the admin panel with the job table and create form.
// GET /admin/dashboard.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	b := h.adminPageData(r)

	jobs, err := h.Jobs.List(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "admin job list failed", "error", err)
		b.WithError("Unable to load jobs right now. Please try again.")
	} else {
		b.With("Jobs", jobs)
	}

	h.renderPage(w, r, b.Build())
}

// AdminCreateJob creates a job posting from the admin form.
// POST /admin/jobs.
func (h *UIHandlers) AdminCreateJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := model.CreateJobRequest{
		Title:       r.PostFormValue("title"),
		Company:     r.PostFormValue("company"),
		Description: r.PostFormValue("description"),
	}
	if session := GetSessionFromContext(r.Context()); session != nil {
		req.CreatedBy = &session.UserID
	}

	if _, err := h.Jobs.Create(r.Context(), &req); err != nil {
		h.renderAdminError(w, r, adminErrorParams{Err: err, Req: &req})
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// AdminDeleteJob deletes a single job posting. Deleting a job that is
// already gone still lands back on the dashboard.
// POST /admin/jobs/delete.
func (h *UIHandlers) AdminDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	jobID := r.PostFormValue("id")
	if jobID == "" {
		h.NotFound(w, r)
		return
	}

	if _, err := h.Jobs.Delete(r.Context(), jobID); err != nil {
		h.renderAdminError(w, r, adminErrorParams{Err: err})
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// AdminBatchDeleteJobs deletes the checked job postings in one statement.
// POST /admin/jobs/batch-delete.
func (h *UIHandlers) AdminBatchDeleteJobs(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ids := r.PostForm["ids"]
	// Some clients submit a single comma-separated value instead.
	if len(ids) == 1 && strings.Contains(ids[0], ",") {
		ids = strings.Split(ids[0], ",")
	}

	if _, err := h.Jobs.DeleteMany(r.Context(), ids); err != nil {
		h.renderAdminError(w, r, adminErrorParams{Err: err})
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// adminErrorParams groups inputs for rendering the admin page with an inline error.
type adminErrorParams struct {
	Err error
	Req *model.CreateJobRequest
}

// renderAdminError re-renders the admin dashboard with an inline message so a
// failed action never lands on a blank page.
func (h *UIHandlers) renderAdminError(w http.ResponseWriter, r *http.Request, p adminErrorParams) {
	msg := "Something went wrong. Please try again."
	if apperrors.IsValidation(p.Err) || apperrors.IsConflict(p.Err) {
		msg = p.Err.Error()
	} else {
		h.logger().ErrorContext(r.Context(), "admin action failed",
			"path", r.URL.Path, "error", p.Err)
	}

	b := h.adminPageData(r)
	b.WithError(msg)
	if p.Req != nil {
		b.With("Form", p.Req)
	}
	if jobs, err := h.Jobs.List(r.Context()); err == nil {
		b.With("Jobs", jobs)
	}

	h.renderPage(w, r, b.Build())
}

func (h *UIHandlers) adminPageData(r *http.Request) *TemplateDataBuilder {
	return NewTemplateData(r, PageMeta{
		Title:       "Admin - Hirebase",
		PageTitle:   "Manage jobs",
		CurrentPage: PageAdmin,
	})
}
