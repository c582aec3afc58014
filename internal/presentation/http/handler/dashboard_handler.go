package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
)

// DashboardHandler handles back-office dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary returns revenue and occupancy analytics for the last N days
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}
