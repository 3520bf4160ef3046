package service

import (
	"context"
	"time"

	"dashboard-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Query limits. Unbounded history queries are capped: a missing limit falls
// back to the default, anything above the maximum is clamped.
const (
	DefaultQueryLimit = 500
	MaxQueryLimit     = 1000
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.HistoryEvent) error
	GetByID(ctx context.Context, id string) (*domain.HistoryEvent, error)
	Find(ctx context.Context, filter domain.EventFilter) ([]domain.HistoryEvent, error)
}

// EventMirror receives a copy of every persisted event, e.g. a Kafka topic.
// Mirroring is best-effort; failures are logged and never surfaced.
type EventMirror interface {
	Publish(ctx context.Context, event domain.HistoryEvent) error
}

type HistoryService struct {
	events     EventRepository
	mirror     EventMirror
	defaultTTL time.Duration
}

func NewHistoryService(events EventRepository, mirror EventMirror, defaultTTL time.Duration) *HistoryService {
	if defaultTTL <= 0 {
		defaultTTL = domain.DefaultEventTTL
	}
	return &HistoryService{
		events:     events,
		mirror:     mirror,
		defaultTTL: defaultTTL,
	}
}

// CreateEvent validates and persists a history event. The timestamp is
// always server-assigned; a caller can never backfill historical events.
func (s *HistoryService) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.HistoryEvent, error) {
	if req.Type == "" {
		return nil, domain.MissingFieldError("type")
	}
	if req.Title == "" {
		return nil, domain.MissingFieldError("title")
	}
	if req.Description == "" {
		return nil, domain.MissingFieldError("description")
	}
	if req.UserID == "" {
		return nil, domain.MissingFieldError("userId")
	}
	if req.UserName == "" {
		return nil, domain.MissingFieldError("userName")
	}
	if !domain.IsValidEventType(req.Type) {
		return nil, domain.InvalidFieldError("type", req.Type)
	}

	severity := req.Severity
	if severity == "" {
		severity = domain.SeverityInfo
	}
	if !domain.IsValidSeverity(severity) {
		return nil, domain.InvalidFieldError("severity", req.Severity)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	ttl := req.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now().UTC()
	event := &domain.HistoryEvent{
		ID:          id,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Timestamp:   now,
		UserID:      req.UserID,
		UserName:    req.UserName,
		Severity:    severity,
		Metadata:    req.Metadata,

		SessionID: req.SessionID,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,

		RelatedWorkflowID:       req.RelatedWorkflowID,
		RelatedTaskID:           req.RelatedTaskID,
		RelatedTemplateID:       req.RelatedTemplateID,
		RelatedCredentialID:     req.RelatedCredentialID,
		RelatedBrowserProfileID: req.RelatedBrowserProfileID,

		ExecutionTime: req.ExecutionTime,
		ResourceUsage: req.ResourceUsage,
		Tags:          req.Tags,

		ExpiresAt: now.Add(ttl),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	if s.mirror != nil {
		if err := s.mirror.Publish(ctx, *event); err != nil {
			log.WithError(err).WithField("event_id", event.ID).Warn("Failed to mirror history event, continuing")
		}
	}

	return event, nil
}

// QueryEvents returns non-expired events matching the filter, newest first.
// An empty result is not an error.
func (s *HistoryService) QueryEvents(ctx context.Context, filter domain.EventFilter) ([]domain.HistoryEvent, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Severity != "" && !domain.IsValidSeverity(filter.Severity) {
		return nil, domain.InvalidFieldError("severity", filter.Severity)
	}

	events, err := s.events.Find(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to query history events")
		return nil, err
	}
	return events, nil
}

func (s *HistoryService) GetEvent(ctx context.Context, id string) (*domain.HistoryEvent, error) {
	if id == "" {
		return nil, domain.MissingFieldError("id")
	}
	return s.events.GetByID(ctx, id)
}
