package handlers

import (
	"errors"
	"net/http"

	"hireboard-backend/pkg/authz"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/jobs"
	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/membership"
	"hireboard-backend/pkg/utils"
)

// respondError maps service sentinels onto the response envelope. Every
// handler funnels errors through here so a rule produces the same status
// on every route that can hit it.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membership.ErrValidation), errors.Is(err, jobs.ErrValidation):
		utils.WriteValidationErrorResponse(w, "Validation failed", err.Error())
	case errors.Is(err, authz.ErrUnauthenticated):
		utils.WriteUnauthorizedResponse(w, "Authentication required")
	case errors.Is(err, authz.ErrForbidden):
		utils.WriteForbiddenResponse(w, "You do not have access to this company")
	case errors.Is(err, database.ErrNotFound):
		utils.WriteNotFoundResponse(w, "Resource not found")
	case errors.Is(err, membership.ErrInviteUsed):
		utils.WriteConflictResponse(w, "This invite has already been redeemed")
	case errors.Is(err, membership.ErrInviteExpired):
		utils.WriteErrorResponseWithCode(w, http.StatusBadRequest, "INVITE_EXPIRED", "This invite has expired", "")
	case errors.Is(err, membership.ErrEmailMismatch):
		utils.WriteForbiddenResponse(w, "This invite was issued for a different email address")
	case errors.Is(err, membership.ErrOtherCompany):
		utils.WriteConflictResponse(w, "User already belongs to another company")
	case errors.Is(err, membership.ErrAlreadyAdmin):
		utils.WriteConflictResponse(w, "User is already an admin of this company")
	case errors.Is(err, membership.ErrAlreadyMember):
		utils.WriteConflictResponse(w, "User is already a recruiter of this company")
	case errors.Is(err, membership.ErrRequestExists):
		utils.WriteConflictResponse(w, "A pending recruiter request already exists")
	case errors.Is(err, membership.ErrRequestDone):
		utils.WriteConflictResponse(w, "This recruiter request has already been processed")
	case errors.Is(err, membership.ErrEmailTaken):
		utils.WriteConflictResponse(w, "Email is already registered")
	case errors.Is(err, membership.ErrCNPJTaken):
		utils.WriteConflictResponse(w, "A company with this CNPJ already exists")
	case errors.Is(err, membership.ErrBadCredentials):
		utils.WriteUnauthorizedResponse(w, "Invalid email or password")
	case errors.Is(err, jobs.ErrAlreadyApplied):
		utils.WriteConflictResponse(w, "You have already applied to this job")
	default:
		logs.Logger.WithError(err).Error("unhandled error")
		utils.WriteInternalServerErrorResponse(w, "Internal server error")
	}
}
