package core

import (
	"context"

	"github.com/jobdeck/jobdeck/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) (*model.Job, error)
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	List(ctx context.Context, opts model.JobListOptions) (*model.JobPage, error)
	Update(ctx context.Context, id int64, patch *model.JobPatch) (*model.Job, error)
	Delete(ctx context.Context, id int64) error

	// RefreshStatuses performs the bulk status sweep: first clears the
	// active/scheduled flags on jobs whose expiration date has passed,
	// then activates scheduled jobs whose posting date has arrived.
	RefreshStatuses(ctx context.Context) (model.StatusRefreshResult, error)
}

// UserRepository defines the interface for user account data operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
