package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jsalazar/tiendita-api/internal/application/service"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/dto/response"
)

// ReportHandler handles income report HTTP requests
type ReportHandler struct {
	incomeService *service.IncomeService
}

// NewReportHandler creates a new report handler
func NewReportHandler(incomeService *service.IncomeService) *ReportHandler {
	return &ReportHandler{incomeService: incomeService}
}

// DailyIncome handles the daily income breakdown report. The date query
// parameter defaults to today.
func (h *ReportHandler) DailyIncome(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	snapshot, err := h.incomeService.DailySnapshot(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily income retrieved successfully", snapshot)
}
