package domain

import (
	"errors"
	"time"
)

const maxWorkflowNameLength = 200

var (
	ErrWorkflowNotFound    = errors.New("workflow not found")
	ErrInvalidWorkflowName = errors.New("invalid workflow name")
)

// Workflow status constants
const (
	WorkflowStatusActive   = "active"
	WorkflowStatusPaused   = "paused"
	WorkflowStatusArchived = "archived"
)

// Workflow is a named, reusable automation definition. The analytics
// aggregator reads the registry to seed one stats bucket per workflow.
type Workflow struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	TaskPrompt  string    `json:"taskPrompt,omitempty" bson:"task_prompt,omitempty"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

type CreateWorkflowRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TaskPrompt  string `json:"taskPrompt,omitempty"`
}

type UpdateWorkflowRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	TaskPrompt  *string `json:"taskPrompt,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func ValidateWorkflowName(name string) error {
	if name == "" || len(name) > maxWorkflowNameLength {
		return ErrInvalidWorkflowName
	}
	return nil
}
