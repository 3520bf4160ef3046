package service

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/domain"
	"dashboard-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	workflows []domain.Workflow
}

func (f *fakeRegistry) List(context.Context) ([]domain.Workflow, error) {
	return f.workflows, nil
}

func executionEvent(workflowID, severity string, durationMS float64, ts time.Time) *domain.HistoryEvent {
	return &domain.HistoryEvent{
		ID:                uuid.NewString(),
		Type:              domain.EventTaskExecuted,
		Title:             "Task completed",
		Description:       "run finished",
		Timestamp:         ts,
		UserID:            "user-1",
		UserName:          "Test User",
		Severity:          severity,
		RelatedWorkflowID: workflowID,
		ExecutionTime:     &durationMS,
		ExpiresAt:         ts.Add(24 * time.Hour),
	}
}

func TestComputeWorkflowStatsFixture(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	registry := &fakeRegistry{workflows: []domain.Workflow{{ID: "wf-1", Name: "Invoice sync"}}}
	svc := NewAnalyticsService(registry, repo)

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeveritySuccess, 60000, now.Add(-3*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeveritySuccess, 120000, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeverityError, 90000, now.Add(-1*time.Hour))))

	stats, err := svc.ComputeWorkflowStats(ctx, 24)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	st := stats[0]
	assert.Equal(t, "wf-1", st.WorkflowID)
	assert.Equal(t, "Invoice sync", st.Name)
	assert.Equal(t, 3, st.Runs)
	assert.Equal(t, 66.7, st.SuccessRate)
	assert.Equal(t, 1.5, st.AvgDurationMinutes)
	assert.Equal(t, domain.StatsStatusSuccess, st.Status)
	require.NotNil(t, st.LastRun)
	assert.WithinDuration(t, now.Add(-1*time.Hour), *st.LastRun, time.Second)
}

func TestComputeWorkflowStatsZeroRuns(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	registry := &fakeRegistry{workflows: []domain.Workflow{{ID: "wf-idle", Name: "Idle"}}}
	svc := NewAnalyticsService(registry, repo)

	stats, err := svc.ComputeWorkflowStats(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	st := stats[0]
	assert.Equal(t, 0, st.Runs)
	assert.Equal(t, 0.0, st.SuccessRate)
	assert.Equal(t, 0.0, st.AvgDurationMinutes)
	assert.Equal(t, domain.StatsStatusPaused, st.Status)
	assert.Nil(t, st.LastRun)
}

func TestComputeWorkflowStatsFailedStatus(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	registry := &fakeRegistry{workflows: []domain.Workflow{{ID: "wf-1", Name: "Flaky"}}}
	svc := NewAnalyticsService(registry, repo)

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeverityError, 1000, now.Add(-3*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeverityError, 1000, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeveritySuccess, 1000, now.Add(-1*time.Hour))))

	stats, err := svc.ComputeWorkflowStats(ctx, 24)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, domain.StatsStatusFailed, stats[0].Status)
}

func TestComputeWorkflowStatsSkipsUnknownWorkflows(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	registry := &fakeRegistry{workflows: []domain.Workflow{{ID: "wf-1", Name: "Known"}}}
	svc := NewAnalyticsService(registry, repo)

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, executionEvent("wf-ghost", domain.SeveritySuccess, 1000, now.Add(-1*time.Hour))))

	stats, err := svc.ComputeWorkflowStats(ctx, 24)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].Runs)
}

func TestComputeWorkflowStatsWindow(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	registry := &fakeRegistry{workflows: []domain.Workflow{{ID: "wf-1", Name: "Windowed"}}}
	svc := NewAnalyticsService(registry, repo)

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeveritySuccess, 1000, now.Add(-30*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-1", domain.SeveritySuccess, 1000, now.Add(-1*time.Hour))))

	stats, err := svc.ComputeWorkflowStats(ctx, 24)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Runs, "events outside the range must not count")
}

func TestComputeWorkflowStatsOrderingAndTruncation(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()

	var workflows []domain.Workflow
	for i := 0; i < 25; i++ {
		workflows = append(workflows, domain.Workflow{
			ID:   "wf-" + string(rune('a'+i)),
			Name: "Workflow " + string(rune('a'+i)),
		})
	}
	registry := &fakeRegistry{workflows: workflows}
	svc := NewAnalyticsService(registry, repo)

	ctx := context.Background()
	now := time.Now().UTC()
	// Second workflow gets two runs, first gets one; the rest none.
	require.NoError(t, repo.Create(ctx, executionEvent("wf-a", domain.SeveritySuccess, 1000, now.Add(-1*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-b", domain.SeveritySuccess, 1000, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, executionEvent("wf-b", domain.SeveritySuccess, 1000, now.Add(-1*time.Hour))))

	stats, err := svc.ComputeWorkflowStats(ctx, 24)
	require.NoError(t, err)

	assert.Len(t, stats, 20, "output is truncated to the top 20")
	assert.Equal(t, "wf-b", stats[0].WorkflowID)
	assert.Equal(t, "wf-a", stats[1].WorkflowID)
	// Zero-run ties keep registry order.
	assert.Equal(t, "wf-c", stats[2].WorkflowID)
}
