package repository

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(id string, ts time.Time, mutate func(*domain.HistoryEvent)) *domain.HistoryEvent {
	e := &domain.HistoryEvent{
		ID:          id,
		Type:        domain.EventUserLogin,
		Title:       "User logged in",
		Description: "login",
		Timestamp:   ts,
		UserID:      "user-1",
		UserName:    "Test User",
		Severity:    domain.SeverityInfo,
		ExpiresAt:   ts.Add(time.Hour),
	}
	if mutate != nil {
		mutate(e)
	}
	return e
}

func TestInMemoryFindSortsNewestFirst(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, seedEvent("old", base.Add(-2*time.Minute), nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("new", base, nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("mid", base.Add(-time.Minute), nil)))

	events, err := repo.Find(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "new", events[0].ID)
	assert.Equal(t, "mid", events[1].ID)
	assert.Equal(t, "old", events[2].ID)
}

func TestInMemoryFindStableOnEqualTimestamps(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	ts := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, seedEvent("first", ts, nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("second", ts, nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("third", ts, nil)))

	events, err := repo.Find(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].ID)
	assert.Equal(t, "second", events[1].ID)
	assert.Equal(t, "third", events[2].ID)
}

func TestInMemoryFindTagsMatchAny(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	ts := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, seedEvent("tagged", ts, func(e *domain.HistoryEvent) {
		e.Tags = []string{"billing", "critical"}
	})))
	require.NoError(t, repo.Create(ctx, seedEvent("untagged", ts, nil)))

	events, err := repo.Find(ctx, domain.EventFilter{Tags: []string{"critical", "unused"}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "tagged", events[0].ID)
}

func TestInMemoryFindTimeBoundsInclusive(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Create(ctx, seedEvent("at-start", base, nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("at-end", base.Add(time.Minute), nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("before", base.Add(-time.Second), nil)))
	require.NoError(t, repo.Create(ctx, seedEvent("after", base.Add(time.Minute+time.Second), nil)))

	end := base.Add(time.Minute)
	events, err := repo.Find(ctx, domain.EventFilter{Start: &base, End: &end})
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestInMemoryFindOffsetPastEnd(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedEvent("only", time.Now().UTC(), nil)))

	events, err := repo.Find(ctx, domain.EventFilter{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInMemoryExpiryGuard(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	ts := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, seedEvent("expired", ts, func(e *domain.HistoryEvent) {
		e.ExpiresAt = ts.Add(-time.Second)
	})))
	require.NoError(t, repo.Create(ctx, seedEvent("live", ts, nil)))

	events, err := repo.Find(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "live", events[0].ID)

	_, err = repo.GetByID(ctx, "expired")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestInMemoryDuplicateID(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	ts := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, seedEvent("dup", ts, nil)))
	err := repo.Create(ctx, seedEvent("dup", ts, nil))
	assert.ErrorIs(t, err, domain.ErrEventExists)
}
