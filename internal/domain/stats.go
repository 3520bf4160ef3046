package domain

import "time"

// Workflow stats status constants
const (
	StatsStatusSuccess = "success"
	StatsStatusFailed  = "failed"
	StatsStatusPaused  = "paused"
)

// WorkflowStats aggregates the task_executed events of one workflow over a
// time window.
type WorkflowStats struct {
	WorkflowID string `json:"workflowId"`
	Name       string `json:"name"`

	Runs      int `json:"runs"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`

	// SuccessRate is a percentage with one decimal place, 0 when Runs is 0.
	SuccessRate float64 `json:"successRate"`

	// AvgDurationMinutes is rounded to one decimal place, 0 when no
	// durations were recorded.
	AvgDurationMinutes float64 `json:"avgDuration"`

	LastRun *time.Time `json:"lastRun,omitempty"`
	Status  string     `json:"status"`
}
