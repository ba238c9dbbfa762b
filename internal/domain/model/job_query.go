package model

import "strings"

const (
	// DefaultPageSize is the page size applied when the caller does not
	// override it.
	DefaultPageSize = 10
	// MaxPageSize caps caller-supplied page sizes.
	MaxPageSize = 100
)

// StatusFilter selects jobs by derived status, recomputed as a query
// predicate so the database does the filtering.
type StatusFilter string

const (
	StatusFilterActive    StatusFilter = "active"
	StatusFilterExpired   StatusFilter = "expired"
	StatusFilterScheduled StatusFilter = "scheduled"
)

// ParseStatusFilter normalizes a status query value and reports whether
// it is one of the supported filters. Unknown values are ignored by the
// repository, matching the lenient handling of order_by.
func ParseStatusFilter(value string) (StatusFilter, bool) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(value)))
	switch f {
	case StatusFilterActive, StatusFilterExpired, StatusFilterScheduled:
		return f, true
	default:
		return "", false
	}
}

// orderByWhitelist maps the accepted order_by values to column/direction
// pairs. Anything else falls back to the default ordering.
var orderByWhitelist = map[string][2]string{
	"posting_date":     {"posting_date", "ASC"},
	"-posting_date":    {"posting_date", "DESC"},
	"expiration_date":  {"expiration_date", "ASC"},
	"-expiration_date": {"expiration_date", "DESC"},
}

// ResolveOrderBy maps an order_by query value onto a column and
// direction. Values outside the whitelist yield the default ordering,
// posting_date descending.
func ResolveOrderBy(orderBy string) (string, string) {
	if pair, ok := orderByWhitelist[strings.TrimSpace(orderBy)]; ok {
		return pair[0], pair[1]
	}
	return "posting_date", "DESC"
}

// JobListOptions controls filtering, ordering, and pagination for
// listing jobs. Free-text filters are case-insensitive substring
// matches, AND-combined. RequiredSkills is the raw comma-separated
// query value; Skills() splits and trims it.
type JobListOptions struct {
	Title          string
	Description    string
	CompanyName    string
	Location       string
	SalaryRange    string
	RequiredSkills string
	Status         string
	OrderBy        string
	Page           int
	PageSize       int
}

// Skills splits the comma-separated skills filter into trimmed,
// non-empty entries.
func (o *JobListOptions) Skills() []string {
	if strings.TrimSpace(o.RequiredSkills) == "" {
		return nil
	}
	parts := strings.Split(o.RequiredSkills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Normalize clamps pagination values into their supported ranges.
func (o *JobListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
}

// Offset returns the row offset for the normalized page settings.
func (o *JobListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}

// JobPage is one page of job listings plus the total match count.
type JobPage struct {
	Items []*Job
	Count int
}

// JobListResult is one page of job views plus the total match count.
type JobListResult struct {
	Items []*JobView `json:"items"`
	Count int        `json:"count"`
}

// StatusRefreshResult reports the effect of one bulk status sweep.
type StatusRefreshResult struct {
	// Expired is the number of jobs whose flags were cleared because
	// their expiration date passed.
	Expired int
	// Published is the number of scheduled jobs flipped to active
	// because their posting date arrived.
	Published int
	// Active is the number of currently active jobs after the sweep.
	Active int
}

// Touched returns the total number of records changed by the sweep.
func (r StatusRefreshResult) Touched() int {
	return r.Expired + r.Published
}
