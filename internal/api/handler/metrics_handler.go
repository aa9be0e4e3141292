package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/careerhq/career-platform/internal/api/domain"
	"github.com/careerhq/career-platform/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// SchoolMetrics handles GET /api/v1/metrics/school
// Staff see their own school's placement numbers. Admins may pass ?school= to
// inspect any school.
func (h *MetricsHandler) SchoolMetrics(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	staff, err := h.storage.GetStaffByID(c.Request.Context(), identity.StaffID)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		h.logger.Error("Failed to load staff account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute metrics",
		})
		return
	}

	school := staff.School
	if identity.IsAdmin() {
		if override := c.Query("school"); override != "" {
			school = override
		}
	}

	metrics, err := h.storage.SchoolMetrics(c.Request.Context(), school)
	if err != nil {
		h.logger.Error("Failed to compute school metrics",
			slog.String("school", school),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute metrics",
		})
		return
	}

	resp := dto.SchoolMetricsResponse{
		School:             school,
		TotalStudents:      metrics.TotalStudents,
		PlacedStudents:     metrics.PlacedStudents,
		AvgDaysToPlacement: metrics.AvgDaysToPlacement,
	}
	if metrics.TotalStudents > 0 {
		resp.PlacementRate = float64(metrics.PlacedStudents) / float64(metrics.TotalStudents)
	}

	c.JSON(http.StatusOK, resp)
}

// Dashboard handles GET /api/v1/dashboard
func (h *MetricsHandler) Dashboard(c *gin.Context) {
	counts, err := h.storage.DashboardCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard counts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute dashboard counts",
		})
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Students:            counts.Students,
		Jobs:                counts.Jobs,
		QueuedMatches:       counts.QueuedMatches,
		FinalizedMatches:    counts.FinalizedMatches,
		EnrichmentsInFlight: counts.EnrichmentsInFlight,
		FailedTasks:         counts.FailedTasks,
	})
}
