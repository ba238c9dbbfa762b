package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jobdeck/jobdeck/internal/core"
	"github.com/jobdeck/jobdeck/internal/data"
	"github.com/jobdeck/jobdeck/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck/internal/errors"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo core.JobRepository

	// TimeProvider overrides the clock (useful for tests).
	TimeProvider data.TimeProvider
}

// JobService orchestrates validation, status derivation, and repository
// calls for job postings.
type JobService struct {
	repo  core.JobRepository
	clock data.TimeProvider
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	clock := opts.TimeProvider
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}
	return &JobService{repo: opts.Repo, clock: clock}
}

// Create validates and persists a new job posting.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.JobView, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}

	now := s.clock.Now().UTC()
	resolved, err := req.Resolve(now)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
		CompanyName:    strings.TrimSpace(req.CompanyName),
		PostingDate:    resolved.PostingDate,
		ExpirationDate: resolved.ExpirationDate,
		RequiredSkills: req.RequiredSkills,
		IsActive:       true,
		IsScheduled:    resolved.IsScheduled,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create job")
	}
	return created.View(now), nil
}

// GetByID retrieves a job with its derived status.
func (s *JobService) GetByID(ctx context.Context, id int64) (*model.JobView, error) {
	job, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return job.View(s.clock.Now()), nil
}

// List returns one page of jobs matching the options.
func (s *JobService) List(ctx context.Context, opts model.JobListOptions) (*model.JobListResult, error) {
	page, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to list jobs")
	}

	now := s.clock.Now()
	items := make([]*model.JobView, len(page.Items))
	for i, job := range page.Items {
		items[i] = job.View(now)
	}
	return &model.JobListResult{Items: items, Count: page.Count}, nil
}

// Update applies a partial update. Only supplied fields change; the
// scheduling fields are reconciled against the stored record before the
// patch is persisted.
func (s *JobService) Update(ctx context.Context, id int64, req *model.UpdateJobRequest) (*model.JobView, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if req.CompanyName != nil {
		return nil, apperrors.Forbidden("Company name cannot be changed")
	}

	current, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	patch, err := s.resolvePatch(req, current, now)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("Job %d not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to update job")
	}
	return updated.View(now), nil
}

// resolvePatch turns an update request into a fully resolved patch,
// enforcing the scheduling and date-ordering rules.
func (s *JobService) resolvePatch(
	req *model.UpdateJobRequest,
	current *model.Job,
	now time.Time,
) (*model.JobPatch, error) {
	patch := &model.JobPatch{
		Description:    req.Description,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
		RequiredSkills: req.RequiredSkills,
		IsActive:       req.IsActive,
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.ValidationField("title", "title is required")
		}
		if utf8.RuneCountInString(title) > 255 {
			return nil, apperrors.ValidationField("title", "title cannot exceed 255 characters")
		}
		patch.Title = &title
	}

	if req.ExpirationDate != nil {
		expiration, err := model.ParseTime(*req.ExpirationDate)
		if err != nil {
			return nil, apperrors.ValidationField("expiration_date", "Invalid expiration_date format")
		}
		patch.ExpirationDate = &expiration
	}

	if err := s.reconcileScheduling(req, current, patch, now); err != nil {
		return nil, err
	}

	effectivePosting := current.PostingDate
	if patch.PostingDate != nil {
		effectivePosting = *patch.PostingDate
	}
	effectiveExpiration := current.ExpirationDate
	if patch.ExpirationDate != nil {
		effectiveExpiration = *patch.ExpirationDate
	}
	if !effectivePosting.Before(effectiveExpiration) {
		return nil, apperrors.Validation("Posting date must be before expiration date")
	}
	return patch, nil
}

// reconcileScheduling applies the tri-state is_scheduled semantics:
// explicit true re-validates the posting date, explicit false publishes
// immediately, and an absent flag defers to the posting date and the
// stored scheduling state.
func (s *JobService) reconcileScheduling(
	req *model.UpdateJobRequest,
	current *model.Job,
	patch *model.JobPatch,
	now time.Time,
) error {
	var supplied *time.Time
	if req.PostingDate != nil {
		posting, err := model.ParseTime(*req.PostingDate)
		if err != nil {
			return apperrors.ValidationField("posting_date", "Invalid posting_date format")
		}
		supplied = &posting
	}

	switch {
	case req.IsScheduled != nil && *req.IsScheduled:
		scheduled := true
		if supplied != nil {
			if !supplied.After(now) {
				return apperrors.ValidationField("posting_date", "posting_date must be in the future")
			}
			patch.PostingDate = supplied
		} else if !current.PostingDate.UTC().After(now) {
			// No new posting date, and the stored one is not in the
			// future: the job cannot be (re)scheduled.
			return apperrors.ValidationField("posting_date", "posting_date must be in the future")
		}
		patch.IsScheduled = &scheduled

	case req.IsScheduled != nil:
		// Explicit false publishes the job now.
		scheduled := false
		posting := now
		patch.IsScheduled = &scheduled
		patch.PostingDate = &posting

	case supplied != nil:
		if current.IsScheduled {
			if supplied.Before(now) {
				// Past posting date on a scheduled job auto-publishes it.
				scheduled := false
				posting := now
				patch.IsScheduled = &scheduled
				patch.PostingDate = &posting
			} else {
				patch.PostingDate = supplied
			}
		} else {
			// Non-scheduled jobs always reflect "now" when dates are touched.
			posting := now
			patch.PostingDate = &posting
		}
	}
	return nil
}

// Delete removes a job posting.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return apperrors.NotFoundf("Job %d not found", id)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to delete job")
	}
	return nil
}

func (s *JobService) getJob(ctx context.Context, id int64) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("Job %d not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to get job")
	}
	return job, nil
}
