package service

import (
	"context"

	"dashboard-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

const defaultAlertLimit = 50

type AlertsService struct {
	events EventRepository
}

func NewAlertsService(events EventRepository) *AlertsService {
	return &AlertsService{events: events}
}

// ProjectAlerts reshapes recent history events into the monitoring feed.
func (s *AlertsService) ProjectAlerts(ctx context.Context, filter domain.EventFilter) ([]domain.Alert, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultAlertLimit
	}

	events, err := s.events.Find(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to query events for alerts")
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(events))
	for i := range events {
		alerts = append(alerts, ProjectAlert(&events[i]))
	}
	return alerts, nil
}

// ProjectAlert maps one event to its alert shape: error events are failures
// with high severity, warnings are performance alerts with medium severity,
// everything else an anomaly with low severity.
func ProjectAlert(e *domain.HistoryEvent) domain.Alert {
	alert := domain.Alert{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}

	switch e.Severity {
	case domain.SeverityError:
		alert.Type = domain.AlertTypeFailure
		alert.Severity = domain.AlertSeverityHigh
	case domain.SeverityWarning:
		alert.Type = domain.AlertTypePerformance
		alert.Severity = domain.AlertSeverityMedium
	default:
		alert.Type = domain.AlertTypeAnomaly
		alert.Severity = domain.AlertSeverityLow
	}

	alert.AutomationID = e.RelatedWorkflowID
	if alert.AutomationID == "" {
		alert.AutomationID = e.RelatedTaskID
	}

	if name, ok := e.Metadata["workflowName"].(string); ok && name != "" {
		alert.AutomationName = name
	} else if taskID, ok := e.Metadata["taskId"].(string); ok && taskID != "" {
		alert.AutomationName = taskID
	}

	return alert
}
