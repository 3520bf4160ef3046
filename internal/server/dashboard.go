package server

import (
	"context"
	"net/http"
	"strconv"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
)

type AnalyticsService interface {
	ComputeWorkflowStats(ctx context.Context, rangeHours int) ([]domain.WorkflowStats, error)
}

type AlertsService interface {
	ProjectAlerts(ctx context.Context, filter domain.EventFilter) ([]domain.Alert, error)
}

type dashboardServer struct {
	analytics AnalyticsService
	alerts    AlertsService
}

func NewDashboardServer(analytics AnalyticsService, alerts AlertsService) *dashboardServer {
	return &dashboardServer{
		analytics: analytics,
		alerts:    alerts,
	}
}

func (s *dashboardServer) GetWorkflowStats(c echo.Context) error {
	rangeHours := 0
	if v := c.QueryParam("range_hours"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "range_hours must be a positive integer",
			})
		}
		rangeHours = h
	}

	stats, err := s.analytics.ComputeWorkflowStats(c.Request().Context(), rangeHours)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *dashboardServer) GetAlerts(c echo.Context) error {
	filter, err := parseEventFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	alerts, err := s.alerts.ProjectAlerts(c.Request().Context(), filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, alerts)
}
