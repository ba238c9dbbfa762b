//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/jobdeck/jobdeck/internal/errors"
)

const (
	maxTitleLen   = 255
	maxCompanyLen = 255
)

// JobStatus is the derived lifecycle state of a job posting. It is never
// stored; it is computed from the posting/expiration dates and the
// is_active/is_scheduled flags relative to a point in time.
type JobStatus string

const (
	StatusScheduled JobStatus = "Scheduled"
	StatusActive    JobStatus = "Active"
	StatusExpired   JobStatus = "Expired"
	StatusInactive  JobStatus = "Inactive"
)

// Job represents a job posting.
type Job struct {
	ID             int64     `json:"id"              db:"id"`
	Title          string    `json:"title"           db:"title"`
	Description    string    `json:"description"     db:"description"`
	Location       string    `json:"location"        db:"location"`
	SalaryRange    string    `json:"salary_range"    db:"salary_range"`
	CompanyName    string    `json:"company_name"    db:"company_name"`
	PostingDate    time.Time `json:"posting_date"    db:"posting_date"`
	ExpirationDate time.Time `json:"expiration_date" db:"expiration_date"`
	RequiredSkills []string  `json:"required_skills" db:"required_skills"`
	IsActive       bool      `json:"is_active"       db:"is_active"`
	IsScheduled    bool      `json:"is_scheduled"    db:"is_scheduled"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// StatusAt derives the job status at the given instant. The evaluation
// order is load-bearing: expiration always beats an is_active=true flag,
// and scheduling only applies while the posting date is still in the
// future.
func (j *Job) StatusAt(now time.Time) JobStatus {
	posting := j.PostingDate.UTC()
	expiration := j.ExpirationDate.UTC()
	now = now.UTC()

	switch {
	case j.IsScheduled && posting.After(now):
		return StatusScheduled
	case expiration.Before(now):
		return StatusExpired
	case j.IsActive && !posting.After(now):
		return StatusActive
	default:
		return StatusInactive
	}
}

// JobView is a Job together with its derived status, as rendered in
// API responses.
type JobView struct {
	*Job
	Status JobStatus `json:"status"`
}

// View pairs the job with its status at the given instant.
func (j *Job) View(now time.Time) *JobView {
	return &JobView{Job: j, Status: j.StatusAt(now)}
}

// timeLayouts are the accepted request date formats. Zoneless values are
// interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a request date string, assuming UTC when no zone is
// given, and normalizes the result to UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	_, err := time.Parse(time.RFC3339, value)
	return time.Time{}, err
}

// CreateJobRequest represents parameters to create a Job. Dates travel as
// strings so that format errors can be reported per field.
type CreateJobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	SalaryRange    string   `json:"salary_range"`
	CompanyName    string   `json:"company_name"`
	ExpirationDate string   `json:"expiration_date"`
	RequiredSkills []string `json:"required_skills"`
	IsScheduled    bool     `json:"is_scheduled"`
	PostingDate    *string  `json:"posting_date,omitempty"`
}

// ResolvedSchedule holds the posting/expiration instants and scheduling
// flag after create-time validation.
type ResolvedSchedule struct {
	PostingDate    time.Time
	ExpirationDate time.Time
	IsScheduled    bool
}

// Validate checks required scalar fields.
func (r *CreateJobRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 255 characters")
	}
	company := strings.TrimSpace(r.CompanyName)
	if company == "" {
		return apperrors.ValidationField("company_name", "company_name is required")
	}
	if utf8.RuneCountInString(company) > maxCompanyLen {
		return apperrors.ValidationField("company_name", "company_name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.ExpirationDate) == "" {
		return apperrors.ValidationField("expiration_date", "expiration_date is required")
	}
	return nil
}

// Resolve validates the scheduling rules and resolves the effective
// posting/expiration dates relative to now:
//
//   - scheduled jobs must carry a parsable posting_date strictly in the
//     future;
//   - non-scheduled jobs always post "now", ignoring any supplied
//     posting_date;
//   - the posting date must precede the expiration date.
func (r *CreateJobRequest) Resolve(now time.Time) (ResolvedSchedule, error) {
	if err := r.Validate(); err != nil {
		return ResolvedSchedule{}, err
	}

	now = now.UTC()
	resolved := ResolvedSchedule{IsScheduled: r.IsScheduled}

	if r.IsScheduled {
		if r.PostingDate == nil || strings.TrimSpace(*r.PostingDate) == "" {
			return ResolvedSchedule{}, apperrors.ValidationField("posting_date", "Scheduled job must have a posting_date")
		}
		posting, err := ParseTime(*r.PostingDate)
		if err != nil {
			return ResolvedSchedule{}, apperrors.ValidationField("posting_date", "Invalid posting_date format")
		}
		if !posting.After(now) {
			return ResolvedSchedule{}, apperrors.ValidationField("posting_date", "posting_date must be in the future")
		}
		resolved.PostingDate = posting
	} else {
		resolved.PostingDate = now
		resolved.IsScheduled = false
	}

	expiration, err := ParseTime(r.ExpirationDate)
	if err != nil {
		return ResolvedSchedule{}, apperrors.ValidationField("expiration_date", "Invalid expiration_date format")
	}
	resolved.ExpirationDate = expiration

	if !resolved.PostingDate.Before(resolved.ExpirationDate) {
		return ResolvedSchedule{}, apperrors.Validation("Posting date must be before expiration date")
	}
	return resolved, nil
}

// UpdateJobRequest represents a partial update to a Job. Absent fields
// (nil pointers) leave the stored value untouched; this tri-state is
// what lets the service distinguish "not supplied" from a zero value.
// CompanyName is carried only so the service can reject attempts to
// change it.
type UpdateJobRequest struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Location       *string   `json:"location,omitempty"`
	SalaryRange    *string   `json:"salary_range,omitempty"`
	CompanyName    *string   `json:"company_name,omitempty"`
	ExpirationDate *string   `json:"expiration_date,omitempty"`
	RequiredSkills *[]string `json:"required_skills,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	IsScheduled    *bool     `json:"is_scheduled,omitempty"`
	PostingDate    *string   `json:"posting_date,omitempty"`
}

// JobPatch is the fully resolved set of column changes produced by the
// job service's update reconciliation and consumed by the repository.
type JobPatch struct {
	Title          *string
	Description    *string
	Location       *string
	SalaryRange    *string
	ExpirationDate *time.Time
	RequiredSkills *[]string
	IsActive       *bool
	IsScheduled    *bool
	PostingDate    *time.Time
}

// Empty reports whether the patch changes nothing.
func (p *JobPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil &&
		p.SalaryRange == nil && p.ExpirationDate == nil && p.RequiredSkills == nil &&
		p.IsActive == nil && p.IsScheduled == nil && p.PostingDate == nil
}
