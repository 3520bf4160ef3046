package service

import (
	"context"
	"errors"
	"testing"

	"dashboard-service/internal/domain"
	"dashboard-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHistory struct{}

func (failingHistory) CreateEvent(context.Context, domain.CreateEventRequest) (*domain.HistoryEvent, error) {
	return nil, errors.New("store unavailable")
}

func TestRecorderSwallowsStoreFailure(t *testing.T) {
	recorder := NewRecorder(failingHistory{})
	actor := domain.Actor{ID: "user-1", Name: "Test User"}

	// Must not panic or surface an error to the caller.
	recorder.WorkflowCreated(context.Background(), actor, &domain.Workflow{ID: "wf-1", Name: "Invoice sync"})
	recorder.TaskExecuted(context.Background(), actor, "wf-1", "task-1", false, 1000, "Invoice sync")
	recorder.UserLogin(context.Background(), actor)
}

func TestRecorderNilSafe(t *testing.T) {
	var recorder *Recorder
	recorder.UserLogout(context.Background(), domain.Actor{})
}

func TestRecorderWorkflowCreated(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	recorder := NewRecorder(NewHistoryService(repo, nil, 0))
	actor := domain.Actor{ID: "user-1", Name: "Test User"}

	recorder.WorkflowCreated(context.Background(), actor, &domain.Workflow{ID: "wf-1", Name: "Invoice sync"})

	events, err := repo.Find(context.Background(), domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, domain.EventWorkflowCreated, e.Type)
	assert.Equal(t, domain.SeveritySuccess, e.Severity)
	assert.Equal(t, "wf-1", e.RelatedWorkflowID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, "Invoice sync", e.Metadata["workflowName"])
}

func TestRecorderTaskExecuted(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	recorder := NewRecorder(NewHistoryService(repo, nil, 0))
	actor := domain.Actor{ID: "user-1", Name: "Test User"}

	recorder.TaskExecuted(context.Background(), actor, "wf-1", "task-1", false, 45000, "Invoice sync")

	events, err := repo.Find(context.Background(), domain.EventFilter{Type: domain.EventTaskExecuted})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, domain.SeverityError, e.Severity)
	assert.Equal(t, "task-1", e.RelatedTaskID)
	assert.Equal(t, "wf-1", e.RelatedWorkflowID)
	require.NotNil(t, e.ExecutionTime)
	assert.Equal(t, 45000.0, *e.ExecutionTime)
}

func TestRecorderCredentialLifecycle(t *testing.T) {
	repo := repository.NewInMemoryEventRepository()
	recorder := NewRecorder(NewHistoryService(repo, nil, 0))
	actor := domain.Actor{ID: "user-1", Name: "Test User"}
	ctx := context.Background()

	recorder.CredentialAdded(ctx, actor, "cred-1", "Bank login")
	recorder.CredentialUpdated(ctx, actor, "cred-1", "Bank login")
	recorder.CredentialDeleted(ctx, actor, "cred-1", "Bank login")

	events, err := repo.Find(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, "cred-1", e.RelatedCredentialID)
	}
}
