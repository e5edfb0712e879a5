package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hireboard-backend/pkg/membership"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/utils"
)

// CompanyHandler exposes company creation, lookup, admin assignment and
// following.
type CompanyHandler struct {
	companies *membership.CompanyService
}

func NewCompanyHandler(companies *membership.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// Create registers a company; the caller becomes its first admin.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CompanyCreateRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.CNPJ == "" {
		utils.WriteValidationErrorResponse(w, "Validation failed", "name and cnpj are required")
		return
	}

	company, err := h.companies.Create(r.Context(), middleware.IdentityFrom(r.Context()), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, company)
}

// Get returns a company by id.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.companies.Get(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, company)
}

// AddAdmin appends a user to the company's admin set (system admin only).
func (h *CompanyHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.AddAdminRequest
	if err := utils.ParseJSONBody(r, &req); err != nil || req.UserID == "" {
		utils.WriteBadRequestResponse(w, "user_id is required")
		return
	}

	company, err := h.companies.AddAdmin(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "companyID"), req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, company)
}

// Follow subscribes the caller to the company. Repeat follows are a no-op.
func (h *CompanyHandler) Follow(w http.ResponseWriter, r *http.Request) {
	changed, err := h.companies.Follow(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "companyID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]bool{"following": true, "changed": changed})
}

// Unfollow removes the caller's subscription.
func (h *CompanyHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	changed, err := h.companies.Unfollow(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "companyID"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]bool{"following": false, "changed": changed})
}
