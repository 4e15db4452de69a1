package handler

import (
	"net/http"

	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ dashboard *service.DashboardService }

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GET /api/dashboard/stats/:userId
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	stats, err := h.dashboard.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/dashboard/members-with-programs/:userId
func (h *DashboardHandler) MembersWithPrograms(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	members, err := h.dashboard.MembersWithPrograms(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
