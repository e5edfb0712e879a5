package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hireboard-backend/pkg/membership"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/utils"
)

// RecruiterHandler exposes the recruiter approval workflow.
type RecruiterHandler struct {
	recruiters *membership.RecruiterService
}

func NewRecruiterHandler(recruiters *membership.RecruiterService) *RecruiterHandler {
	return &RecruiterHandler{recruiters: recruiters}
}

// Apply queues a recruiter request for the caller.
func (h *RecruiterHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req models.RecruiterApplyRequest
	if err := utils.ParseJSONBody(r, &req); err != nil || req.CompanyID == "" {
		utils.WriteBadRequestResponse(w, "company_id is required")
		return
	}

	request, err := h.recruiters.Apply(r.Context(), middleware.IdentityFrom(r.Context()), req.CompanyID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, request)
}

// ListPending returns a company's pending requests for its admins.
func (h *RecruiterHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.recruiters.ListPending(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "companyID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, requests)
}

// Approve grants recruiter access for a pending request.
func (h *RecruiterHandler) Approve(w http.ResponseWriter, r *http.Request) {
	request, err := h.recruiters.Approve(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "requestID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, request)
}

// Reject declines a pending request. The optional reason is echoed to the
// applicant but not stored.
func (h *RecruiterHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req models.RecruiterRejectRequest
	if err := utils.ParseJSONBody(r, &req); err != nil && r.ContentLength > 0 {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	request, err := h.recruiters.Reject(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "requestID"), req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, request)
}
