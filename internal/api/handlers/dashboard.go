package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the aggregated dashboard
type DashboardHandler struct {
	dashboardService service.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
// @Summary Dashboard statistics
// @Description Revenue, active contacts, pipeline value, pending tasks, recent activity and monthly revenue of the caller's organization
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
