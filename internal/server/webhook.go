package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Browser-Use-Signature"
	timestampHeader = "X-Browser-Use-Timestamp"
)

// webhookPayload is the status update Browser Use posts back when a task
// changes state.
type webhookPayload struct {
	Type    string `json:"type"`
	Payload struct {
		TaskID     string  `json:"task_id"`
		WorkflowID string  `json:"workflow_id,omitempty"`
		Status     string  `json:"status"`
		DurationMS float64 `json:"duration_ms,omitempty"`
	} `json:"payload"`
}

type TaskOutcomeService interface {
	RecordOutcome(ctx context.Context, actor domain.Actor, workflowID, taskID string, success bool, durationMS float64)
}

type webhookServer struct {
	secret string
	tasks  TaskOutcomeService
	actor  domain.Actor
}

func NewWebhookServer(secret string, tasks TaskOutcomeService, actor domain.Actor) *webhookServer {
	return &webhookServer{
		secret: secret,
		tasks:  tasks,
		actor:  actor,
	}
}

// HandleBrowserUse verifies the HMAC-SHA256 signature over timestamp.body
// and turns finished/failed task updates into task_executed history events.
func (s *webhookServer) HandleBrowserUse(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "unreadable request body",
		})
	}

	timestamp := c.Request().Header.Get(timestampHeader)
	signature := c.Request().Header.Get(signatureHeader)
	if !s.verifySignature(timestamp, body, signature) {
		log.Warn("Rejected webhook with invalid signature")
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "invalid signature",
		})
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid payload",
		})
	}

	if payload.Type != "agent.task.status_update" || payload.Payload.TaskID == "" {
		// Acknowledge anything else without acting on it.
		return c.JSON(http.StatusOK, map[string]string{"status": "ignored"})
	}

	switch payload.Payload.Status {
	case domain.TaskStatusFinished:
		s.tasks.RecordOutcome(c.Request().Context(), s.actor, payload.Payload.WorkflowID, payload.Payload.TaskID, true, payload.Payload.DurationMS)
	case domain.TaskStatusFailed:
		s.tasks.RecordOutcome(c.Request().Context(), s.actor, payload.Payload.WorkflowID, payload.Payload.TaskID, false, payload.Payload.DurationMS)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *webhookServer) verifySignature(timestamp string, body []byte, signature string) bool {
	if s.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
