// Package testutil provides testing utilities and helpers for the job board.
package testutil

import (
	"fmt"

	"github.com/hirebase/jobboard/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title:       "Backend Engineer",
			Company:     "Acme Corp",
			Description: "Build and operate backend services.",
		},
	}
}

// WithTitle sets the job title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithCompany sets the company name.
func (b *JobRequestBuilder) WithCompany(company string) *JobRequestBuilder {
	b.req.Company = company
	return b
}

// WithDescription sets the job description.
func (b *JobRequestBuilder) WithDescription(description string) *JobRequestBuilder {
	b.req.Description = description
	return b
}

// WithCreatedBy sets the creating user ID.
func (b *JobRequestBuilder) WithCreatedBy(userID string) *JobRequestBuilder {
	b.req.CreatedBy = &userID
	return b
}

// Build returns the built CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req *model.CreateUserRequest
}

// NewUserRequest creates a new UserRequestBuilder with sensible defaults.
func NewUserRequest() *UserRequestBuilder {
	return &UserRequestBuilder{
		req: &model.CreateUserRequest{
			Email:    "candidate@example.com",
			FullName: "Test Candidate",
			Provider: "password",
		},
	}
}

// WithEmail sets the email.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// WithEmailSuffix sets a unique email using the given suffix.
func (b *UserRequestBuilder) WithEmailSuffix(n int) *UserRequestBuilder {
	b.req.Email = fmt.Sprintf("candidate-%d@example.com", n)
	return b
}

// WithFullName sets the full name.
func (b *UserRequestBuilder) WithFullName(name string) *UserRequestBuilder {
	b.req.FullName = name
	return b
}

// WithProvider sets the identity provider.
func (b *UserRequestBuilder) WithProvider(provider string) *UserRequestBuilder {
	b.req.Provider = provider
	return b
}

// WithPasswordHash sets the password hash.
func (b *UserRequestBuilder) WithPasswordHash(hash string) *UserRequestBuilder {
	b.req.PasswordHash = &hash
	return b
}

// Build returns the built CreateUserRequest.
func (b *UserRequestBuilder) Build() *model.CreateUserRequest {
	return b.req
}
