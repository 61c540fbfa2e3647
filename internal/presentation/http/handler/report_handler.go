package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mrfandu1/Inventory-Stocks/internal/application/service"
	"github.com/mrfandu1/Inventory-Stocks/internal/presentation/http/dto/response"
)

// ReportHandler handles analytics report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Get handles building an analytics report for the requested time range
func (h *ReportHandler) Get(c *gin.Context) {
	sess := GetSession(c)
	if sess == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	rng := service.TimeRange(c.DefaultQuery("range", "day"))
	if !rng.IsValid() {
		response.BadRequest(c, "Invalid range. Must be one of: hour, day, month")
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), *sess, rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}
