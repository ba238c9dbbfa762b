package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck/internal/data"
	"github.com/jobdeck/jobdeck/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck/internal/errors"
	"github.com/jobdeck/jobdeck/internal/mocks"
)

var jobTestNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newJobService creates a mock repository and service pinned to a fixed clock.
func newJobService(t *testing.T) (*mocks.MockJobRepository, *JobService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{
		Repo:         repo,
		TimeProvider: data.NewFixedTimeProvider(jobTestNow),
	})
	return repo, svc
}

func storedJob() *model.Job {
	return &model.Job{
		ID:             42,
		Title:          "Backend Engineer",
		Description:    "Build APIs",
		Location:       "Remote",
		SalaryRange:    "100k-140k",
		CompanyName:    "Acme",
		PostingDate:    jobTestNow.Add(-24 * time.Hour),
		ExpirationDate: jobTestNow.Add(30 * 24 * time.Hour),
		RequiredSkills: []string{"go", "postgres"},
		IsActive:       true,
	}
}

func TestJobService_Create_Immediate(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	req := &model.CreateJobRequest{
		Title:          "  Backend Engineer  ",
		Description:    "Build APIs",
		CompanyName:    "Acme",
		ExpirationDate: jobTestNow.Add(30 * 24 * time.Hour).Format(time.RFC3339),
		RequiredSkills: []string{"go"},
	}

	repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, job *model.Job) (*model.Job, error) {
			assert.Equal(t, "Backend Engineer", job.Title)
			assert.True(t, job.IsActive)
			assert.False(t, job.IsScheduled)
			assert.Equal(t, jobTestNow, job.PostingDate)
			created := *job
			created.ID = 1
			return &created, nil
		}).
		Times(1)

	view, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, model.StatusActive, view.Status)
}

func TestJobService_Create_Scheduled(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	posting := jobTestNow.Add(48 * time.Hour).Format(time.RFC3339)
	req := &model.CreateJobRequest{
		Title:          "Backend Engineer",
		CompanyName:    "Acme",
		ExpirationDate: jobTestNow.Add(30 * 24 * time.Hour).Format(time.RFC3339),
		IsScheduled:    true,
		PostingDate:    &posting,
	}

	repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, job *model.Job) (*model.Job, error) {
			assert.True(t, job.IsScheduled)
			assert.Equal(t, jobTestNow.Add(48*time.Hour), job.PostingDate)
			return job, nil
		}).
		Times(1)

	view, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, view.Status)
}

func TestJobService_Create_ScheduledWithoutPostingDate(t *testing.T) {
	t.Parallel()
	_, svc := newJobService(t)

	req := &model.CreateJobRequest{
		Title:          "Backend Engineer",
		CompanyName:    "Acme",
		ExpirationDate: jobTestNow.Add(time.Hour).Format(time.RFC3339),
		IsScheduled:    true,
	}

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Scheduled job must have a posting_date", apperrors.GetMessage(err))
}

func TestJobService_Create_RepoError(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	req := &model.CreateJobRequest{
		Title:          "Backend Engineer",
		CompanyName:    "Acme",
		ExpirationDate: jobTestNow.Add(time.Hour).Format(time.RFC3339),
	}
	repo.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("boom")).Times(1)

	_, err := svc.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestJobService_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(7)).Return(nil, data.ErrJobNotFound).Times(1)

	_, err := svc.GetByID(ctx, 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Job 7 not found", apperrors.GetMessage(err))
}

func TestJobService_GetByID_DerivesStatus(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	job := storedJob()
	job.ExpirationDate = jobTestNow.Add(-time.Hour)
	repo.EXPECT().GetByID(ctx, job.ID).Return(job, nil).Times(1)

	view, err := svc.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExpired, view.Status)
}

func TestJobService_List(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	opts := model.JobListOptions{Page: 1, PageSize: 10}
	repo.EXPECT().
		List(ctx, opts).
		Return(&model.JobPage{Items: []*model.Job{storedJob()}, Count: 1}, nil).
		Times(1)

	result, err := svc.List(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Items, 1)
	assert.Equal(t, model.StatusActive, result.Items[0].Status)
}

func TestJobService_Update_CompanyNameForbidden(t *testing.T) {
	t.Parallel()
	_, svc := newJobService(t)

	req := &model.UpdateJobRequest{CompanyName: stringPtr("Other Corp")}
	_, err := svc.Update(context.Background(), 42, req)

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, "Company name cannot be changed", apperrors.GetMessage(err))
}

func TestJobService_Update_SimpleFields(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)
	repo.EXPECT().
		Update(ctx, current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, patch *model.JobPatch) (*model.Job, error) {
			require.NotNil(t, patch.Title)
			assert.Equal(t, "Senior Backend Engineer", *patch.Title)
			require.NotNil(t, patch.Description)
			assert.Nil(t, patch.PostingDate)
			assert.Nil(t, patch.IsScheduled)
			updated := *current
			updated.Title = *patch.Title
			return &updated, nil
		}).
		Times(1)

	view, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{
		Title:       stringPtr("  Senior Backend Engineer  "),
		Description: stringPtr("Own the platform"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", view.Title)
}

func TestJobService_Update_EmptyTitle(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)

	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{Title: stringPtr("   ")})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "title", apperrors.GetField(err))
}

func TestJobService_Update_ScheduleWithFutureDate(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)
	repo.EXPECT().
		Update(ctx, current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, patch *model.JobPatch) (*model.Job, error) {
			require.NotNil(t, patch.IsScheduled)
			assert.True(t, *patch.IsScheduled)
			require.NotNil(t, patch.PostingDate)
			assert.Equal(t, jobTestNow.Add(72*time.Hour), *patch.PostingDate)
			return current, nil
		}).
		Times(1)

	posting := jobTestNow.Add(72 * time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{
		IsScheduled: boolPtr(true),
		PostingDate: &posting,
	})
	require.NoError(t, err)
}

func TestJobService_Update_ScheduleWithPastDate(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)

	posting := jobTestNow.Add(-time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{
		IsScheduled: boolPtr(true),
		PostingDate: &posting,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "posting_date must be in the future", apperrors.GetMessage(err))
}

func TestJobService_Update_ScheduleWithoutDateAndStalePosting(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob() // posting date in the past

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)

	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{IsScheduled: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "posting_date must be in the future", apperrors.GetMessage(err))
}

func TestJobService_Update_ExplicitUnschedulePublishesNow(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()
	current.IsScheduled = true
	current.PostingDate = jobTestNow.Add(48 * time.Hour)

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)
	repo.EXPECT().
		Update(ctx, current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, patch *model.JobPatch) (*model.Job, error) {
			require.NotNil(t, patch.IsScheduled)
			assert.False(t, *patch.IsScheduled)
			require.NotNil(t, patch.PostingDate)
			assert.Equal(t, jobTestNow, *patch.PostingDate)
			return current, nil
		}).
		Times(1)

	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{IsScheduled: boolPtr(false)})
	require.NoError(t, err)
}

func TestJobService_Update_PastDateAutoPublishesScheduledJob(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()
	current.IsScheduled = true
	current.PostingDate = jobTestNow.Add(48 * time.Hour)

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)
	repo.EXPECT().
		Update(ctx, current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, patch *model.JobPatch) (*model.Job, error) {
			require.NotNil(t, patch.IsScheduled)
			assert.False(t, *patch.IsScheduled)
			require.NotNil(t, patch.PostingDate)
			assert.Equal(t, jobTestNow, *patch.PostingDate)
			return current, nil
		}).
		Times(1)

	posting := jobTestNow.Add(-time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{PostingDate: &posting})
	require.NoError(t, err)
}

func TestJobService_Update_PostingDateOnUnscheduledJobResetsToNow(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)
	repo.EXPECT().
		Update(ctx, current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, patch *model.JobPatch) (*model.Job, error) {
			assert.Nil(t, patch.IsScheduled)
			require.NotNil(t, patch.PostingDate)
			assert.Equal(t, jobTestNow, *patch.PostingDate)
			return current, nil
		}).
		Times(1)

	posting := jobTestNow.Add(72 * time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{PostingDate: &posting})
	require.NoError(t, err)
}

func TestJobService_Update_DateOrderingViolation(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)

	expiration := jobTestNow.Add(-48 * time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{ExpirationDate: &expiration})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Posting date must be before expiration date", apperrors.GetMessage(err))
}

func TestJobService_Update_BadExpirationFormat(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()
	current := storedJob()

	repo.EXPECT().GetByID(ctx, current.ID).Return(current, nil).Times(1)

	expiration := "not-a-date"
	_, err := svc.Update(ctx, current.ID, &model.UpdateJobRequest{ExpirationDate: &expiration})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Invalid expiration_date format", apperrors.GetMessage(err))
}

func TestJobService_Delete(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, int64(42)).Return(nil).Times(1)
	require.NoError(t, svc.Delete(ctx, 42))
}

func TestJobService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, int64(99)).Return(data.ErrJobNotFound).Times(1)

	err := svc.Delete(ctx, 99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func stringPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
