package domain

import (
	"errors"
	"fmt"
	"time"
)

// History event errors
var (
	ErrEventNotFound = errors.New("history event not found")
	ErrEventExists   = errors.New("history event with this ID already exists")
	ErrValidation    = errors.New("validation failed")
)

// MissingFieldError reports which required field failed validation so the
// caller can render a useful message.
func MissingFieldError(field string) error {
	return fmt.Errorf("%w: field %q is required", ErrValidation, field)
}

func InvalidFieldError(field, value string) error {
	return fmt.Errorf("%w: field %q has invalid value %q", ErrValidation, field, value)
}

// Event type constants - closed set
const (
	EventWorkflowCreated       = "workflow_created"
	EventWorkflowEdited        = "workflow_edited"
	EventWorkflowDeleted       = "workflow_deleted"
	EventTaskExecuted          = "task_executed"
	EventTaskStopped           = "task_stopped"
	EventTaskPaused            = "task_paused"
	EventTaskResumed           = "task_resumed"
	EventTemplateUsed          = "template_used"
	EventSettingsChanged       = "settings_changed"
	EventUserLogin             = "user_login"
	EventUserLogout            = "user_logout"
	EventCredentialAdded       = "credential_added"
	EventCredentialUpdated     = "credential_updated"
	EventCredentialDeleted     = "credential_deleted"
	EventBrowserProfileCreated = "browser_profile_created"
	EventBrowserProfileUpdated = "browser_profile_updated"
	EventBrowserProfileDeleted = "browser_profile_deleted"
)

// Severity constants
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// DefaultEventTTL is how long an event stays in the store unless the caller
// overrides it at creation time.
const DefaultEventTTL = 365 * 24 * time.Hour

// ValidEventTypes returns the closed set of tracked event types.
func ValidEventTypes() []string {
	return []string{
		EventWorkflowCreated, EventWorkflowEdited, EventWorkflowDeleted,
		EventTaskExecuted, EventTaskStopped, EventTaskPaused, EventTaskResumed,
		EventTemplateUsed, EventSettingsChanged,
		EventUserLogin, EventUserLogout,
		EventCredentialAdded, EventCredentialUpdated, EventCredentialDeleted,
		EventBrowserProfileCreated, EventBrowserProfileUpdated, EventBrowserProfileDeleted,
	}
}

func IsValidEventType(t string) bool {
	for _, v := range ValidEventTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// HistoryEvent is an immutable audit record of one tracked domain action.
// Events are created through the history service, never updated, and removed
// only once ExpiresAt has passed.
type HistoryEvent struct {
	ID          string `json:"id" bson:"_id"`
	Type        string `json:"type" bson:"type"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`

	// Timestamp is always server-assigned at write time; caller-supplied
	// values are overwritten.
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`

	UserID   string `json:"userId" bson:"user_id"`
	UserName string `json:"userName" bson:"user_name"`
	Severity string `json:"severity" bson:"severity"`

	Metadata map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`

	SessionID string `json:"sessionId,omitempty" bson:"session_id,omitempty"`
	IPAddress string `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"user_agent,omitempty"`

	RelatedWorkflowID       string `json:"relatedWorkflowId,omitempty" bson:"related_workflow_id,omitempty"`
	RelatedTaskID           string `json:"relatedTaskId,omitempty" bson:"related_task_id,omitempty"`
	RelatedTemplateID       string `json:"relatedTemplateId,omitempty" bson:"related_template_id,omitempty"`
	RelatedCredentialID     string `json:"relatedCredentialId,omitempty" bson:"related_credential_id,omitempty"`
	RelatedBrowserProfileID string `json:"relatedBrowserProfileId,omitempty" bson:"related_browser_profile_id,omitempty"`

	// ExecutionTime is a duration in milliseconds; only meaningful for
	// task_executed events.
	ExecutionTime *float64 `json:"executionTime,omitempty" bson:"execution_time,omitempty"`

	ResourceUsage map[string]interface{} `json:"resourceUsage,omitempty" bson:"resource_usage,omitempty"`

	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`

	ExpiresAt time.Time `json:"expiresAt" bson:"expires_at"`
}

// CreateEventRequest carries the caller-controlled fields of a new event.
// ID is optional (generated when absent); Timestamp is never caller
// controlled. TTL overrides DefaultEventTTL when positive.
type CreateEventRequest struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`

	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Severity string `json:"severity,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`

	SessionID string `json:"sessionId,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`

	RelatedWorkflowID       string `json:"relatedWorkflowId,omitempty"`
	RelatedTaskID           string `json:"relatedTaskId,omitempty"`
	RelatedTemplateID       string `json:"relatedTemplateId,omitempty"`
	RelatedCredentialID     string `json:"relatedCredentialId,omitempty"`
	RelatedBrowserProfileID string `json:"relatedBrowserProfileId,omitempty"`

	ExecutionTime *float64               `json:"executionTime,omitempty"`
	ResourceUsage map[string]interface{} `json:"resourceUsage,omitempty"`
	Tags          []string               `json:"tags,omitempty"`

	TTL time.Duration `json:"-"`
}

// EventFilter narrows a history query. All fields are optional; zero values
// mean "no constraint". Tags use match-any semantics.
type EventFilter struct {
	Type              string
	UserID            string
	Severity          string
	Start             *time.Time
	End               *time.Time
	RelatedWorkflowID string
	RelatedTaskID     string
	Tags              []string
	Limit             int
	Offset            int
}

// Actor identifies who performed the action an event records. There is no
// real authentication in this system; the actor is injected by the caller
// (the configured default user in practice) rather than read from a global.
type Actor struct {
	ID   string
	Name string
}
