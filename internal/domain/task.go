package domain

import "errors"

var ErrTaskNotFound = errors.New("task not found")

// Browser Use task status values as reported by the automation API. The set
// is owned by the external service; these are the values the dashboard acts
// on.
const (
	TaskStatusCreated  = "created"
	TaskStatusRunning  = "running"
	TaskStatusFinished = "finished"
	TaskStatusStopped  = "stopped"
	TaskStatusPaused   = "paused"
	TaskStatusFailed   = "failed"
)

// Task mirrors the automation API's task resource, reshaped for the
// dashboard. Execution semantics are opaque; the dashboard only forwards
// commands and records outcomes.
type Task struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowId,omitempty"`
	Prompt     string `json:"prompt"`
	Status     string `json:"status"`
	Output     string `json:"output,omitempty"`
	LiveURL    string `json:"liveUrl,omitempty"`
}

type RunTaskRequest struct {
	WorkflowID string `json:"workflowId,omitempty"`
	Prompt     string `json:"prompt"`
}
