package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"trustnet-backend/application/services"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/common"
)

// DashboardHandler serves the admin dashboard aggregates
type DashboardHandler struct {
	dashboard *services.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Stats handles GET /dashboard/stats (admin only)
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	stats, err := h.dashboard.Stats(r.Context(), user.IsAdmin())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, stats)
}
