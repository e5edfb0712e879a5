package handlers

import (
	"net/http"
	"time"

	"hireboard-backend/pkg/config"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/utils"
)

// HealthHandler reports process and store health.
type HealthHandler struct {
	config *config.Config
	store  database.Store
}

func NewHealthHandler(cfg *config.Config, store database.Store) *HealthHandler {
	return &HealthHandler{config: cfg, store: store}
}

// Health pings the store and reports status. A failing store answers 503
// so load balancers rotate the instance out.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	utils.WriteJSONResponse(w, code, map[string]string{
		"status":      status,
		"environment": h.config.Environment,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
