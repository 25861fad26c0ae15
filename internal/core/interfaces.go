package core

import (
	"context"

	"github.com/hirebase/jobboard/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	// List returns all jobs ordered by creation time descending.
	List(ctx context.Context) ([]*model.Job, error)
	// Delete removes a job and reports the number of rows affected.
	// Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteMany removes the given ids in a single filtered statement.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	// Create inserts an application row. A unique violation on
	// (job_id, user_id) surfaces as a Conflict from the error boundary.
	Create(ctx context.Context, req *model.ApplyRequest) (*model.Application, error)
	// Exists reports whether the (jobID, userID) pair already has a row.
	Exists(ctx context.Context, jobID, userID string) (bool, error)
}

// AdminRepository defines the interface for admin membership lookups.
type AdminRepository interface {
	// IsMember reports whether userID has a row in the admins table.
	// Absence is a normal outcome, not an error.
	IsMember(ctx context.Context, userID string) (bool, error)
}

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertOAuth inserts or refreshes an OAuth-backed account keyed by email.
	UpsertOAuth(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
}
