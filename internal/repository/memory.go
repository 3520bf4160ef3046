package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"dashboard-service/internal/domain"
)

// InMemoryEventRepository keeps events in an append-ordered slice. It backs
// unit tests and local development; filtering semantics match the Mongo
// store, including the query-time expiry guard.
type InMemoryEventRepository struct {
	mu     sync.Mutex
	events []domain.HistoryEvent
}

func NewInMemoryEventRepository() *InMemoryEventRepository {
	return &InMemoryEventRepository{}
}

func (r *InMemoryEventRepository) Create(_ context.Context, event *domain.HistoryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID == event.ID {
			return domain.ErrEventExists
		}
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *InMemoryEventRepository) GetByID(_ context.Context, id string) (*domain.HistoryEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, e := range r.events {
		if e.ID == id && e.ExpiresAt.After(now) {
			out := e
			return &out, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *InMemoryEventRepository) Find(_ context.Context, filter domain.EventFilter) ([]domain.HistoryEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var matched []domain.HistoryEvent
	for _, e := range r.events {
		if !e.ExpiresAt.After(now) {
			continue
		}
		if !matches(&e, filter) {
			continue
		}
		matched = append(matched, e)
	}

	// Newest first; ties keep insertion order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matches(e *domain.HistoryEvent, filter domain.EventFilter) bool {
	if filter.Type != "" && e.Type != filter.Type {
		return false
	}
	if filter.UserID != "" && e.UserID != filter.UserID {
		return false
	}
	if filter.Severity != "" && e.Severity != filter.Severity {
		return false
	}
	if filter.RelatedWorkflowID != "" && e.RelatedWorkflowID != filter.RelatedWorkflowID {
		return false
	}
	if filter.RelatedTaskID != "" && e.RelatedTaskID != filter.RelatedTaskID {
		return false
	}
	if filter.Start != nil && e.Timestamp.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && e.Timestamp.After(*filter.End) {
		return false
	}
	if len(filter.Tags) > 0 && !anyTagMatches(e.Tags, filter.Tags) {
		return false
	}
	return true
}

func anyTagMatches(eventTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range eventTags {
			if t == w {
				return true
			}
		}
	}
	return false
}
