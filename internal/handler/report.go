package handler

import (
	"net/http"

	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{ reports *service.ReportService }

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GET /api/reports/whatsapp/:userId
func (h *ReportHandler) WhatsApp(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	report, err := h.reports.WhatsApp(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
