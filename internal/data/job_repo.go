package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/jobdeck/internal/data/database"
	"github.com/jobdeck/jobdeck/internal/data/pgxutil"
	"github.com/jobdeck/jobdeck/internal/domain/model"
)

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// Create inserts a new job posting. The job's dates and flags must
// already be resolved by the service layer.
func (r *JobRepo) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	if job == nil {
		return nil, errors.New("job is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	skills := job.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (
				title, description, location, salary_range, company_name,
				posting_date, expiration_date, required_skills, is_active, is_scheduled,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11
			) RETURNING `+jobColumnList,
			strings.TrimSpace(job.Title),
			job.Description,
			job.Location,
			job.SalaryRange,
			strings.TrimSpace(job.CompanyName),
			job.PostingDate.UTC(),
			job.ExpirationDate.UTC(),
			skills,
			job.IsActive,
			job.IsScheduled,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return &job, nil
}

// List retrieves one page of jobs matching the options, plus the total
// match count for the same filters.
func (r *JobRepo) List(ctx context.Context, opts model.JobListOptions) (*model.JobPage, error) {
	opts.Normalize()
	now := r.timeProvider.Now().UTC()

	conds := r.buildListConditions(opts, now)
	orderCol, orderDir := model.ResolveOrderBy(opts.OrderBy)

	listQuery, listArgs := database.BuildListQuery(database.NewListQueryOptions("jobs",
		database.WithColumns(jobColumns()...),
		database.WithConditions(conds...),
		database.WithOrderBy(orderCol, orderDir),
		database.WithLimit(opts.PageSize),
		database.WithOffset(opts.Offset()),
	))
	countQuery, countArgs := database.BuildListQuery(database.NewListQueryOptions("jobs",
		database.WithCountOnly(),
		database.WithConditions(conds...),
	))

	var (
		rowsOut []model.Job
		count   int
	)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, listQuery, listArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		if rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job]); err != nil {
			return err
		}
		return conn.QueryRow(ctx, countQuery, countArgs...).Scan(&count)
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	items := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		items[i] = &rowsOut[i]
	}
	return &model.JobPage{Items: items, Count: count}, nil
}

// buildListConditions translates list options into query builder
// conditions. All filters are AND-combined.
func (r *JobRepo) buildListConditions(opts model.JobListOptions, now time.Time) []database.Condition {
	conds := make([]database.Condition, 0, 8)

	addILike := func(field, value string) {
		if v := strings.TrimSpace(value); v != "" {
			conds = append(conds, database.WhereCond(field, database.ILike, "%"+v+"%"))
		}
	}
	addILike("title", opts.Title)
	addILike("description", opts.Description)
	addILike("company_name", opts.CompanyName)
	addILike("location", opts.Location)
	addILike("salary_range", opts.SalaryRange)

	// Each skill must substring-match some entry of the skills array.
	for _, skill := range opts.Skills() {
		conds = append(conds, database.WhereRawCond(
			`EXISTS (SELECT 1 FROM unnest(required_skills) AS skill WHERE skill ILIKE $1)`,
			"%"+skill+"%",
		))
	}

	if filter, ok := model.ParseStatusFilter(opts.Status); ok {
		switch filter {
		case model.StatusFilterActive:
			conds = append(conds, database.WhereRawCond(
				`(is_active = TRUE AND is_scheduled = FALSE AND posting_date <= $1 AND expiration_date > $1)`,
				now,
			))
		case model.StatusFilterExpired:
			conds = append(conds, database.WhereRawCond(`expiration_date < $1`, now))
		case model.StatusFilterScheduled:
			conds = append(conds, database.WhereRawCond(
				`(is_scheduled = TRUE AND posting_date > $1)`,
				now,
			))
		}
	}
	return conds
}

// Update applies a resolved patch to a job and returns the updated row.
func (r *JobRepo) Update(ctx context.Context, id int64, patch *model.JobPatch) (*model.Job, error) {
	if patch == nil {
		return nil, errors.New("job patch is required")
	}

	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(patch)
		if setClause == "" {
			rows, err := conn.Query(ctx, jobGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
			return e
		}
		args = append(args, id)
		query := "UPDATE jobs SET " + setClause + " WHERE id = $" + strconv.Itoa(
			len(args),
		) + " RETURNING " + jobColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a job based on the patch.
func (r *JobRepo) buildUpdateClause(patch *model.JobPatch) (string, []any) {
	setParts := make([]string, 0, 10)
	args := make([]any, 0, 11)
	nextIdx := func() int { return len(args) + 1 }

	if patch.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*patch.Title))
	}
	if patch.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *patch.Description)
	}
	if patch.Location != nil {
		setParts = append(setParts, fmt.Sprintf("location = $%d", nextIdx()))
		args = append(args, *patch.Location)
	}
	if patch.SalaryRange != nil {
		setParts = append(setParts, fmt.Sprintf("salary_range = $%d", nextIdx()))
		args = append(args, *patch.SalaryRange)
	}
	if patch.PostingDate != nil {
		setParts = append(setParts, fmt.Sprintf("posting_date = $%d", nextIdx()))
		args = append(args, patch.PostingDate.UTC())
	}
	if patch.ExpirationDate != nil {
		setParts = append(setParts, fmt.Sprintf("expiration_date = $%d", nextIdx()))
		args = append(args, patch.ExpirationDate.UTC())
	}
	if patch.RequiredSkills != nil {
		skills := *patch.RequiredSkills
		if skills == nil {
			skills = []string{}
		}
		setParts = append(setParts, fmt.Sprintf("required_skills = $%d", nextIdx()))
		args = append(args, skills)
	}
	if patch.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", nextIdx()))
		args = append(args, *patch.IsActive)
	}
	if patch.IsScheduled != nil {
		setParts = append(setParts, fmt.Sprintf("is_scheduled = $%d", nextIdx()))
		args = append(args, *patch.IsScheduled)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a job by ID.
func (r *JobRepo) Delete(ctx context.Context, id int64) error {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if rows == 0 {
		return ErrJobNotFound
	}
	return nil
}

// RefreshStatuses runs the bulk status sweep in a single transaction.
// The expiry step runs first so a job that is simultaneously expired
// and due to publish ends up expired, never active.
func (r *JobRepo) RefreshStatuses(ctx context.Context) (model.StatusRefreshResult, error) {
	now := r.timeProvider.Now().UTC()
	var res model.StatusRefreshResult

	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
			UPDATE jobs
			SET is_active = FALSE, is_scheduled = FALSE, updated_at = $1
			WHERE expiration_date < $1`, now)
		if err != nil {
			return fmt.Errorf("expire step: %w", err)
		}
		res.Expired = int(ct.RowsAffected())

		ct, err = tx.Exec(ctx, `
			UPDATE jobs
			SET is_active = TRUE, is_scheduled = FALSE, updated_at = $1
			WHERE is_scheduled = TRUE AND posting_date <= $1 AND expiration_date > $1`, now)
		if err != nil {
			return fmt.Errorf("publish step: %w", err)
		}
		res.Published = int(ct.RowsAffected())

		return tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM jobs
			WHERE is_active = TRUE AND posting_date <= $1 AND expiration_date > $1`, now).
			Scan(&res.Active)
	}})
	if err != nil {
		return model.StatusRefreshResult{}, fmt.Errorf("failed to refresh job statuses: %w", err)
	}
	return res, nil
}

// --- helpers ---

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	jobColumnList = `id, title, description, location, salary_range, company_name,
			posting_date, expiration_date, required_skills, is_active, is_scheduled,
			created_at, updated_at`

	jobGetByIDQuery = `
		SELECT ` + jobColumnList + `
		FROM jobs
		WHERE id = $1`
)

// jobColumns returns the standard column list for job queries.
// Used by dynamic queries that need to build column lists at runtime.
func jobColumns() []string {
	return []string{
		"id",
		"title",
		"description",
		"location",
		"salary_range",
		"company_name",
		"posting_date",
		"expiration_date",
		"required_skills",
		"is_active",
		"is_scheduled",
		"created_at",
		"updated_at",
	}
}
