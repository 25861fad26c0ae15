package httpx

import (
	"errors"
	"net/http"

	"github.com/hirebase/jobboard/internal/domain/model"
	"github.com/hirebase/jobboard/internal/service"
)

// ApplicationHandlers provides HTTP handlers for job applications.
type ApplicationHandlers struct {
	Svc *service.ApplicationService
}

// GetStatus reports whether the current user has applied to the job.
// GET /api/jobs/{id}/application.
func (h *ApplicationHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	applied, err := h.Svc.HasApplied(r.Context(), jobID, session.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"has_applied": applied})
}

// Apply records an application by the current user for the job. A repeat
// apply surfaces the store's conflict as 409.
// POST /api/jobs/{id}/applications.
func (h *ApplicationHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	app, err := h.Svc.Apply(r.Context(), &model.ApplyRequest{JobID: jobID, UserID: session.UserID})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}
