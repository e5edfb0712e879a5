package handlers

import (
	"errors"
	"net/http"
	"strings"

	"hireboard-backend/pkg/config"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/membership"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/utils"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	config     *config.Config
	store      database.Store
	jwtService *utils.JWTService
}

func NewAuthHandler(cfg *config.Config, store database.Store, jwtService *utils.JWTService) *AuthHandler {
	return &AuthHandler{config: cfg, store: store, jwtService: jwtService}
}

// Register creates an account and returns a token pair.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegisterRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		utils.WriteValidationErrorResponse(w, "Validation failed", "email, password and name are required")
		return
	}
	if len(req.Password) < 8 {
		utils.WriteValidationErrorResponse(w, "Validation failed", "password must be at least 8 characters")
		return
	}

	if _, err := h.store.GetUserByEmail(r.Context(), email); err == nil {
		respondError(w, membership.ErrEmailTaken)
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		respondError(w, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user := &models.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Role:     models.RoleUser,
		Status:   models.StatusActive,
		Skills:   req.Skills,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, membership.ErrEmailTaken)
			return
		}
		respondError(w, err)
		return
	}

	h.respondWithTokens(w, user, http.StatusCreated)
	logs.Logger.WithField("user_id", user.ID).Info("user registered")
}

// Login verifies credentials and returns a token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.UserLoginRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// A missing account and a wrong password answer the same way.
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, membership.ErrBadCredentials)
			return
		}
		respondError(w, err)
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		respondError(w, membership.ErrBadCredentials)
		return
	}

	h.respondWithTokens(w, user, http.StatusOK)
}

// Refresh exchanges a refresh token for a new token pair. Claims are
// rebuilt from the current user record, so membership changes since the
// last login land in the new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := utils.ParseJSONBody(r, &req); err != nil || req.RefreshToken == "" {
		utils.WriteBadRequestResponse(w, "refresh_token is required")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Invalid or expired refresh token")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.respondWithTokens(w, user, http.StatusOK)
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, user)
}

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, user *models.User, status int) {
	access, refresh, expiresIn, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSONResponse(w, status, models.UserLoginResponse{
		User:         *user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	})
}
