package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hirebase/jobboard/internal/core"
	"github.com/hirebase/jobboard/internal/domain/model"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Repo   core.ApplicationRepository // Required: application repository
	Logger *slog.Logger               // Optional: structured logger
}

// ApplicationService provides business logic for job applications.
type ApplicationService struct {
	repo   core.ApplicationRepository
	logger *slog.Logger
}

// NewApplicationService constructs a new ApplicationService with validation.
func NewApplicationService(opts ApplicationServiceOptions) (*ApplicationService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ApplicationRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "application_service")
	}

	return &ApplicationService{
		repo:   opts.Repo,
		logger: logger,
	}, nil
}

// MustNewApplicationService constructs a new ApplicationService and panics on error.
func MustNewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	svc, err := NewApplicationService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// HasApplied reports whether the user already applied to the job. This is a
// point-in-time read for rendering; Apply is the authority on duplicates.
func (s *ApplicationService) HasApplied(ctx context.Context, jobID, userID string) (bool, error) {
	if jobID == "" || userID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, jobID, userID)
}

// Apply submits an application. The insert goes straight to the store and the
// unique constraint decides duplicates, so two racing submissions yield one
// success and one Conflict.
func (s *ApplicationService) Apply(ctx context.Context, req *model.ApplyRequest) (*model.Application, error) {
	app, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "application submitted", "job_id", app.JobID, "user_id", app.UserID)
	}
	return app, nil
}
