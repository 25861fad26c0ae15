//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"time"
)

// Application records that a candidate applied to a job. The (job_id,
// user_id) pair is unique; the store's constraint is the authoritative
// duplicate signal. No update or delete path exists.
type Application struct {
	ID        string    `json:"id"         db:"id"`
	JobID     string    `json:"job_id"     db:"job_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ApplyRequest represents a request to apply to a job.
type ApplyRequest struct {
	JobID  string `json:"job_id"`
	UserID string `json:"-"` // filled from the session, never from input
}

// Validate validates the ApplyRequest fields.
func (r *ApplyRequest) Validate() error {
	if r.JobID == "" {
		return errors.New("job_id is required and cannot be empty")
	}
	if r.UserID == "" {
		return errors.New("user_id is required and cannot be empty")
	}
	return nil
}
