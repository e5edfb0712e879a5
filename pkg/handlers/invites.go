package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hireboard-backend/pkg/membership"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/utils"
)

// InviteHandler exposes the invite lifecycle: issue, verify, redeem.
type InviteHandler struct {
	invites *membership.InviteService
}

func NewInviteHandler(invites *membership.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// Create issues an invite for the company in the URL.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.InviteCreateRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if req.Email == "" {
		utils.WriteValidationErrorResponse(w, "Validation failed", "email is required")
		return
	}

	invite, err := h.invites.Issue(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "companyID"), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, invite)
}

// Verify checks a token without consuming it.
func (h *InviteHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := utils.GetQueryParam(r, "token", "")
	if token == "" {
		utils.WriteBadRequestResponse(w, "token is required")
		return
	}

	verification, err := h.invites.Verify(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, verification)
}

// Accept redeems an invite for the authenticated caller.
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil || req.Token == "" {
		utils.WriteBadRequestResponse(w, "token is required")
		return
	}

	company, err := h.invites.Redeem(r.Context(), middleware.IdentityFrom(r.Context()), req.Token)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, company)
}
