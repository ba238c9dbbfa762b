// Package httpx provides HTTP handlers and utilities for the jobdeck API.
package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jobdeck/jobdeck/internal/domain/model"
	"github.com/jobdeck/jobdeck/internal/service"
)

// JobHandlers provides HTTP handlers for job posting operations.
type JobHandlers struct {
	Svc       *service.JobService
	Refresher *service.StatusRefreshService
}

// jobListItem is the slimmer wire shape used in listings: no
// description and no raw flags, just the derived status.
type jobListItem struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	CompanyName    string          `json:"company_name"`
	Location       string          `json:"location"`
	SalaryRange    string          `json:"salary_range"`
	PostingDate    time.Time       `json:"posting_date"`
	ExpirationDate time.Time       `json:"expiration_date"`
	RequiredSkills []string        `json:"required_skills"`
	Status         model.JobStatus `json:"status"`
}

func toListItem(v *model.JobView) jobListItem {
	return jobListItem{
		ID:             v.ID,
		Title:          v.Title,
		CompanyName:    v.CompanyName,
		Location:       v.Location,
		SalaryRange:    v.SalaryRange,
		PostingDate:    v.PostingDate,
		ExpirationDate: v.ExpirationDate,
		RequiredSkills: v.RequiredSkills,
		Status:         v.Status,
	}
}

// CreateJob handles HTTP requests to create a new job posting.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// ListJobs handles HTTP requests to list job postings with filters and
// pagination.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.List(r.Context(), ParseJobListOptions(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	items := make([]jobListItem, len(result.Items))
	for i, v := range result.Items {
		items[i] = toListItem(v)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": result.Count,
	})
}

// GetJob handles HTTP requests to fetch a single job posting.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// UpdateJob handles HTTP requests to partially update a job posting.
func (h *JobHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// DeleteJob handles HTTP requests to delete a job posting.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatuses handles HTTP requests to trigger the bulk status sweep.
func (h *JobHandlers) UpdateStatuses(w http.ResponseWriter, r *http.Request) {
	res, err := h.Refresher.Refresh(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": service.Summary(res)})
}

// jobID parses the {id} path value. Non-numeric IDs cannot name any
// job, so they read as a 404 rather than a validation error.
func (h *JobHandlers) jobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteMessage(w, http.StatusNotFound, "Job not found")
		return 0, false
	}
	return id, true
}
