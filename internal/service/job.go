package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hirebase/jobboard/internal/core"
	"github.com/hirebase/jobboard/internal/domain/model"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo   core.JobRepository // Required: job repository
	Logger *slog.Logger       // Optional: structured logger
}

// JobService provides business logic for job posting operations.
type JobService struct {
	repo   core.JobRepository
	logger *slog.Logger
}

// NewJobService constructs a new JobService with validation.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_service")
	}

	return &JobService{
		repo:   opts.Repo,
		logger: logger,
	}, nil
}

// MustNewJobService constructs a new JobService and panics on error.
func MustNewJobService(opts JobServiceOptions) *JobService {
	svc, err := NewJobService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create creates a new job posting.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	job, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job created", "job_id", job.ID, "title", job.Title)
	}
	return job, nil
}

// GetByID retrieves a job by ID.
func (s *JobService) GetByID(ctx context.Context, id string) (*model.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all jobs, newest first.
func (s *JobService) List(ctx context.Context) ([]*model.Job, error) {
	return s.repo.List(ctx)
}

// Delete removes a job and reports how many rows went away. Zero is a valid
// outcome when the job was already deleted.
func (s *JobService) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, errors.New("job ID is required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job deleted", "job_id", id, "rows", affected)
	}
	return affected, nil
}

// DeleteMany removes a batch of jobs in one statement. Duplicate and unknown
// ids are tolerated; the returned count reflects rows actually removed.
func (s *JobService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	if len(cleaned) == 0 {
		return 0, nil
	}

	affected, err := s.repo.DeleteMany(ctx, cleaned)
	if err != nil {
		return 0, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "jobs batch deleted", "requested", len(cleaned), "rows", affected)
	}
	return affected, nil
}
