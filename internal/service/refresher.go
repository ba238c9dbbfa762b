package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobdeck/jobdeck/internal/core"
	"github.com/jobdeck/jobdeck/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck/internal/errors"
)

// StatusRefreshServiceOptions groups dependencies for StatusRefreshService.
type StatusRefreshServiceOptions struct {
	Repo   core.JobRepository
	Logger *slog.Logger
}

// StatusRefreshService runs the bulk job status sweep. A single run is
// idempotent and safe to trigger concurrently with CRUD traffic.
type StatusRefreshService struct {
	repo   core.JobRepository
	logger *slog.Logger
}

// NewStatusRefreshService constructs a new StatusRefreshService.
func NewStatusRefreshService(opts StatusRefreshServiceOptions) *StatusRefreshService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusRefreshService{repo: opts.Repo, logger: logger}
}

// Refresh performs one sweep and returns the per-step counts.
func (s *StatusRefreshService) Refresh(ctx context.Context) (model.StatusRefreshResult, error) {
	res, err := s.repo.RefreshStatuses(ctx)
	if err != nil {
		return model.StatusRefreshResult{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to refresh job statuses")
	}

	s.logger.InfoContext(ctx, "job status sweep completed",
		"expired", res.Expired,
		"published", res.Published,
		"active", res.Active,
	)
	return res, nil
}

// Summary renders a sweep result as the human-readable message used in
// API responses.
func Summary(res model.StatusRefreshResult) string {
	return fmt.Sprintf(
		"Successfully updated %d job statuses: %d marked expired, %d scheduled jobs activated, %d currently active",
		res.Touched(), res.Expired, res.Published, res.Active,
	)
}
