package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/utils"
)

// NotificationHandler lists and marks the caller's notifications.
type NotificationHandler struct {
	store database.Store
}

func NewNotificationHandler(store database.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	list, err := h.store.ListNotificationsByUser(r.Context(), identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, list)
}

// MarkRead flags one of the caller's notifications as read. The user
// filter in the store keeps one user from touching another's rows.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	changed, err := h.store.MarkNotificationRead(r.Context(), chi.URLParam(r, "notificationID"), identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !changed {
		utils.WriteNotFoundResponse(w, "Notification not found")
		return
	}
	utils.WriteSuccessResponse(w, map[string]bool{"read": true})
}
