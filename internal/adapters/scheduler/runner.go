// Package scheduler provides the adapter that runs the job status
// sweep on an interval.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/service"
)

// Runner periodically triggers the status refresh service. It runs
// until its context is cancelled.
type Runner struct {
	refresher *service.StatusRefreshService
	interval  time.Duration
	logger    *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Refresher *service.StatusRefreshService
	Config    config.RefresherConfig
	Logger    *slog.Logger
}

// NewRunner creates a new status refresh runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Refresher == nil {
		return nil, errors.New("refresher service is required")
	}
	if opts.Config.Interval <= 0 {
		return nil, errors.New("refresh interval must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		refresher: opts.Refresher,
		interval:  opts.Config.Interval,
		logger:    logger,
	}, nil
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. Sweep failures are logged and retried on the next tick.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting status refresh runner", "interval", r.interval)

	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "status refresh runner stopped")
			return ctx.Err()
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	if _, err := r.refresher.Refresh(ctx); err != nil {
		r.logger.ErrorContext(ctx, "status sweep failed", "err", err)
	}
}
