package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

type Server struct {
	mongo *mongo.Client
}

func NewServer(client *mongo.Client) *Server {
	return &Server{mongo: client}
}

func (s *Server) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := s.mongo.Ping(ctx, nil); err != nil {
		log.WithField("error", err).Error("Health check failed: database is down")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database connection error",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// statusForError maps domain errors to HTTP statuses shared by all handlers.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrWorkflowNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrEventExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidWorkflowName),
		errors.Is(err, domain.ErrInvalidWalletName):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "store unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func errorJSON(c echo.Context, err error) error {
	status, msg := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	}
	return c.JSON(status, map[string]string{"error": msg})
}
