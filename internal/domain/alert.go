package domain

import "time"

// Alert type constants
const (
	AlertTypeFailure     = "failure"
	AlertTypePerformance = "performance"
	AlertTypeAnomaly     = "anomaly"
)

// Alert severity constants
const (
	AlertSeverityHigh   = "high"
	AlertSeverityMedium = "medium"
	AlertSeverityLow    = "low"
)

// Alert is a monitoring-UI reshaping of a history event. Error events become
// "failure"/"high", warnings become "performance"/"medium", everything else
// "anomaly"/"low".
type Alert struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Timestamp      time.Time `json:"timestamp"`
	AutomationID   string    `json:"automationId,omitempty"`
	AutomationName string    `json:"automationName,omitempty"`
}
