package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
)

// ApplicationForm renders the application page for a job. The job details and
// the current user's applied flag are fetched in parallel.
// GET /application?id=<job_id>.
func (h *UIHandlers) ApplicationForm(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("id")
	if jobID == "" {
		h.NotFound(w, r)
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	var (
		job     *model.Job
		applied bool
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		job, err = h.Jobs.GetByID(ctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		applied, err = h.Apps.HasApplied(ctx, jobID, session.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().ErrorContext(r.Context(), "application page load failed",
			"job_id", jobID, "error", err)
		b := NewTemplateData(r, applicationPageMeta("Apply"))
		b.WithError("Unable to load this job right now. Please try again.")
		h.renderPage(w, r, b.Build())
		return
	}

	b := NewTemplateData(r, applicationPageMeta(job.Title))
	b.With("Job", job)
	b.With("AlreadyApplied", applied)
	h.renderPage(w, r, b.Build())
}

// ApplicationSubmit records the application and renders the outcome. Success
// shows a confirmation with a timed redirect back to the dashboard; a repeat
// submission renders the already-applied state instead of an error.
// POST /application.
func (h *UIHandlers) ApplicationSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	jobID := r.PostFormValue("job_id")
	if jobID == "" {
		h.NotFound(w, r)
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	job, err := h.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().ErrorContext(r.Context(), "application submit load failed",
			"job_id", jobID, "error", err)
		b := NewTemplateData(r, applicationPageMeta("Apply"))
		b.WithError("Unable to submit your application right now. Please try again.")
		h.renderPage(w, r, b.Build())
		return
	}

	b := NewTemplateData(r, applicationPageMeta(job.Title))
	b.With("Job", job)

	_, err = h.Apps.Apply(r.Context(), &model.ApplyRequest{JobID: jobID, UserID: session.UserID})
	switch {
	case err == nil:
		b.With("Submitted", true)
	case apperrors.IsConflict(err):
		// The store's unique constraint is the authoritative duplicate signal.
		b.With("AlreadyApplied", true)
	default:
		h.logger().ErrorContext(r.Context(), "application submit failed",
			"job_id", jobID, "user_id", session.UserID, "error", err)
		b.WithError("Unable to submit your application right now. Please try again.")
	}

	h.renderPage(w, r, b.Build())
}

func applicationPageMeta(jobTitle string) PageMeta {
	return PageMeta{
		Title:       "Apply - Hirebase",
		PageTitle:   jobTitle,
		CurrentPage: PageJob,
	}
}
