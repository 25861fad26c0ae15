// Package httpx provides HTTP handlers and utilities for the jobboard API and UI.
package httpx

import (
	"errors"
	"net/http"

	"github.com/hirebase/jobboard/internal/domain/model"
	"github.com/hirebase/jobboard/internal/service"
)

// JobHandlers provides HTTP handlers for job posting operations.
type JobHandlers struct {
	Svc *service.JobService
}

// List handles HTTP requests to list all job postings, newest first.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// Get handles HTTP requests to fetch a single job posting.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	job, err := h.Svc.GetByID(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Create handles HTTP requests to create a new job posting. The creating
// admin's user id is taken from the session, never from the request body.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if session, ok := GetUserSessionFromContext(r.Context()); ok {
		req.CreatedBy = &session.UserID
	}

	job, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// Delete handles HTTP requests to delete a job posting. Deleting a missing
// id is not an error; the response reports how many rows went away.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// BatchDelete handles HTTP requests to delete several job postings at once.
func (h *JobHandlers) BatchDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	deleted, err := h.Svc.DeleteMany(r.Context(), body.IDs)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
