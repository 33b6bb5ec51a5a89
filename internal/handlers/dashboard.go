package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"
)

// DashboardHandler serves the dashboard headline counts.
type DashboardHandler struct {
	reportService *services.ReportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// Stats returns total/completed/pending/in-progress counts plus tasks
// created today.
func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	stats, err := h.reportService.DashboardStats(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
