// Package mocks provides mock implementations for testing the jobdeck services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository and auth port interfaces. The generated files are committed so
// tests build without a codegen step.
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
// Create, GetByID, List, Update, Delete, RefreshStatuses
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/jobdeck/jobdeck/internal/core JobRepository

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByUsername
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/jobdeck/jobdeck/internal/core UserRepository

// Generate mocks for the auth ports from internal/ports package.
// This creates MockPasswordHasher, MockTokenIssuer, and MockRefreshTokenStore.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_ports_mock.go github.com/jobdeck/jobdeck/internal/ports PasswordHasher,TokenIssuer,RefreshTokenStore
