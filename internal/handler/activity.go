package handler

import (
	"net/http"
	"strconv"

	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct{ activity *service.ActivityService }

func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// GET /api/activity/:userId?limit=50
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.activity.List(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
