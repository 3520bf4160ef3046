package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
)

type HistoryService interface {
	CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.HistoryEvent, error)
	QueryEvents(ctx context.Context, filter domain.EventFilter) ([]domain.HistoryEvent, error)
	GetEvent(ctx context.Context, id string) (*domain.HistoryEvent, error)
}

type historyServer struct {
	history HistoryService
	actor   domain.Actor
}

func NewHistoryServer(history HistoryService, actor domain.Actor) *historyServer {
	return &historyServer{
		history: history,
		actor:   actor,
	}
}

func (s *historyServer) CreateEvent(c echo.Context) error {
	var req domain.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	// Events created through the API default to the configured actor.
	if req.UserID == "" {
		req.UserID = s.actor.ID
	}
	if req.UserName == "" {
		req.UserName = s.actor.Name
	}

	event, err := s.history.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (s *historyServer) ListEvents(c echo.Context) error {
	filter, err := parseEventFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	events, err := s.history.QueryEvents(c.Request().Context(), filter)
	if err != nil {
		return errorJSON(c, err)
	}
	if events == nil {
		events = []domain.HistoryEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

func (s *historyServer) GetEvent(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "event ID is required",
		})
	}

	event, err := s.history.GetEvent(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

func parseEventFilter(c echo.Context) (domain.EventFilter, error) {
	filter := domain.EventFilter{
		Type:              c.QueryParam("type"),
		UserID:            c.QueryParam("user_id"),
		Severity:          c.QueryParam("severity"),
		RelatedWorkflowID: c.QueryParam("workflow_id"),
		RelatedTaskID:     c.QueryParam("task_id"),
	}

	if tags := c.QueryParam("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	// An unparseable date is a caller error, never silently ignored.
	if v := c.QueryParam("start_date"); v != "" {
		t, _, err := parseDate(v)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date %q", v)
		}
		filter.Start = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, dateOnly, err := parseDate(v)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date %q", v)
		}
		// A date-only end bound is inclusive of that whole day.
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.End = &t
	}

	if v := c.QueryParam("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	return filter, nil
}

func parseDate(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", v)
	return t, err == nil, err
}
