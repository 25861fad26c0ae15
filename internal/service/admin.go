package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hirebase/jobboard/internal/core"
	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Repo   core.AdminRepository // Required: admin membership repository
	Logger *slog.Logger         // Optional: structured logger
}

// AdminService answers the "is this user an admin" question. It also acts as
// the role resolver for login: membership is checked fresh on each call, and
// any failure denies admin capability rather than aborting the caller.
type AdminService struct {
	repo   core.AdminRepository
	logger *slog.Logger
}

// NewAdminService constructs a new AdminService with validation.
func NewAdminService(opts AdminServiceOptions) (*AdminService, error) {
	if opts.Repo == nil {
		return nil, errors.New("AdminRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "admin_service")
	}

	return &AdminService{
		repo:   opts.Repo,
		logger: logger,
	}, nil
}

// MustNewAdminService constructs a new AdminService and panics on error.
func MustNewAdminService(opts AdminServiceOptions) *AdminService {
	svc, err := NewAdminService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// IsAdmin reports whether the user is an admin. Lookup failures fail closed:
// the user is treated as not an admin and the error is logged, never returned
// as a grant.
func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	ok, err := s.repo.IsMember(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "admin membership check failed", "user_id", userID, "err", err)
		}
		return false, err
	}
	return ok, nil
}

// Resolve implements ports.RoleResolver. Errors resolve to the plain user
// role so a storage hiccup can never mint an admin.
func (s *AdminService) Resolve(ctx context.Context, userID string) domainauth.Role {
	ok, err := s.IsAdmin(ctx, userID)
	if err != nil || !ok {
		return domainauth.RoleUser
	}
	return domainauth.RoleAdmin
}
