package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dashboard-service/internal/domain"
	"dashboard-service/internal/repository"
	"dashboard-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryTestServer() *historyServer {
	repo := repository.NewInMemoryEventRepository()
	svc := service.NewHistoryService(repo, nil, 0)
	return NewHistoryServer(svc, domain.Actor{ID: "default-user", Name: "Dashboard User"})
}

func TestCreateEventHandler(t *testing.T) {
	srv := newHistoryTestServer()
	e := echo.New()

	body := `{"type":"workflow_created","title":"Workflow created","description":"Workflow was created"}`
	req := httptest.NewRequest(http.MethodPost, "/api/history", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := srv.CreateEvent(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created domain.HistoryEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	// The configured actor fills in the user when the caller omits it.
	assert.Equal(t, "default-user", created.UserID)
	assert.Equal(t, "Dashboard User", created.UserName)
}

func TestCreateEventHandlerValidation(t *testing.T) {
	srv := newHistoryTestServer()
	e := echo.New()

	body := `{"type":"workflow_created","description":"missing title"}`
	req := httptest.NewRequest(http.MethodPost, "/api/history", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := srv.CreateEvent(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")
}

func TestListEventsHandlerBadDate(t *testing.T) {
	srv := newHistoryTestServer()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/history?start_date=not-a-date", nil)
	rec := httptest.NewRecorder()

	err := srv.ListEvents(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestListEventsHandlerEmptyResult(t *testing.T) {
	srv := newHistoryTestServer()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()

	err := srv.ListEvents(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListEventsHandlerDateOnlyEndIsInclusive(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	svc := service.NewHistoryService(repo, nil, 0)
	srv := NewHistoryServer(svc, domain.Actor{ID: "default-user", Name: "Dashboard User"})
	e := echo.New()

	// Event created now, queried with today's date as a date-only end
	// bound: the whole day counts, not just its midnight instant.
	created, err := svc.CreateEvent(context.Background(), domain.CreateEventRequest{
		Type:        domain.EventUserLogin,
		Title:       "User logged in",
		Description: "login",
		UserID:      "user-1",
		UserName:    "Test User",
	})
	require.NoError(t, err)

	today := created.Timestamp.Format("2006-01-02")
	req := httptest.NewRequest(http.MethodGet, "/api/history?end_date="+today, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, srv.ListEvents(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var events []domain.HistoryEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)
}

func TestGetEventHandlerNotFound(t *testing.T) {
	srv := newHistoryTestServer()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/history/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := srv.GetEvent(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
