// Package mocks provides mock implementations for testing the job board.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for JobRepository interface from internal/core package.
// This creates MockJobRepository with methods for all JobRepository interface methods:
// Create, GetByID, List, Delete, DeleteMany
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/hirebase/jobboard/internal/core JobRepository

// Generate mock for ApplicationRepository interface from internal/core package.
// This creates MockApplicationRepository with methods for all ApplicationRepository interface methods:
// Create, Exists
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=application_repository_mock.go github.com/hirebase/jobboard/internal/core ApplicationRepository

// Generate mock for AdminRepository interface from internal/core package.
// This creates MockAdminRepository with methods for all AdminRepository interface methods:
// IsMember
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=admin_repository_mock.go github.com/hirebase/jobboard/internal/core AdminRepository

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByEmail, UpsertOAuth
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/hirebase/jobboard/internal/core UserRepository
