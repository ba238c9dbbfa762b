package httpx

import (
	"net/http"
	"strconv"

	"github.com/jobdeck/jobdeck/internal/domain/model"
)

// ParseJobListOptions extracts job listing filters, ordering, and
// pagination from the request query string. Unknown status and
// order_by values are carried through and ignored downstream.
func ParseJobListOptions(r *http.Request) model.JobListOptions {
	q := r.URL.Query()
	opts := model.JobListOptions{
		Title:          q.Get("title"),
		Description:    q.Get("description"),
		CompanyName:    q.Get("company_name"),
		Location:       q.Get("location"),
		SalaryRange:    q.Get("salary_range"),
		RequiredSkills: q.Get("required_skills"),
		Status:         q.Get("status"),
		OrderBy:        q.Get("order_by"),
		Page:           parseIntQuery(r, "page", 1),
		PageSize:       parseIntQuery(r, "page_size", model.DefaultPageSize),
	}
	opts.Normalize()
	return opts
}

// parseIntQuery parses an integer query parameter, falling back to a
// default for missing or malformed values.
func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
