//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Job is a posting on the board. Jobs are immutable after creation: admins
// create and delete them, there is no update path.
type Job struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Company     string    `json:"company"     db:"company"`
	Description *string   `json:"description" db:"description"`
	CreatedBy   *string   `json:"created_by"  db:"created_by"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// DescriptionText returns the description or empty string when null.
func (j *Job) DescriptionText() string {
	if j.Description == nil {
		return ""
	}
	return *j.Description
}

const (
	maxJobTitleLen       = 200
	maxJobCompanyLen     = 200
	maxJobDescriptionLen = 10000
)

// CreateJobRequest represents a request to create a new job posting.
type CreateJobRequest struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description string  `json:"description"`
	CreatedBy   *string `json:"-"` // filled from the session, never from input
}

// Normalize normalizes the CreateJobRequest fields.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Company = strings.TrimSpace(r.Company)
	r.Description = strings.TrimSpace(r.Description)
}

// Validate validates the CreateJobRequest fields. Title, company, and
// description must all be present.
func (r *CreateJobRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if !utf8.ValidString(r.Title) {
		return errors.New("title must be valid UTF-8")
	}
	if utf8.RuneCountInString(r.Title) > maxJobTitleLen {
		return errors.New("title cannot exceed 200 characters")
	}
	if r.Company == "" {
		return errors.New("company is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Company) > maxJobCompanyLen {
		return errors.New("company cannot exceed 200 characters")
	}
	if r.Description == "" {
		return errors.New("description is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Description) > maxJobDescriptionLen {
		return errors.New("description cannot exceed 10000 characters")
	}
	return nil
}
