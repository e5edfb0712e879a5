package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hireboard-backend/pkg/jobs"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/utils"
)

// JobHandler exposes job postings and applications.
type JobHandler struct {
	jobs *jobs.Service
}

func NewJobHandler(service *jobs.Service) *JobHandler {
	return &JobHandler{jobs: service}
}

// Create posts a job; recruiters of the company only.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.JobCreateRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if req.CompanyID == "" || req.Title == "" {
		utils.WriteValidationErrorResponse(w, "Validation failed", "company_id and title are required")
		return
	}

	job, err := h.jobs.Create(r.Context(), middleware.IdentityFrom(r.Context()), req.CompanyID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, job)
}

// Get returns one job and counts the view.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, job)
}

// ListByCompany returns a company's job postings.
func (h *JobHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	list, err := h.jobs.ListByCompany(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, list)
}

// Apply records the caller's application to a job.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	app, err := h.jobs.Apply(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, app)
}
