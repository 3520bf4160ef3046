package service

import (
	"context"
	"testing"

	"dashboard-service/internal/domain"
	"dashboard-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkflowTestService() (*WorkflowService, *fakeWorkflowRepo, *repository.InMemoryEventRepository) {
	workflows := &fakeWorkflowRepo{workflows: map[string]*domain.Workflow{}}
	events := repository.NewInMemoryEventRepository()
	recorder := NewRecorder(NewHistoryService(events, nil, 0))
	return NewWorkflowService(workflows, recorder), workflows, events
}

func TestCreateWorkflowEmitsEvent(t *testing.T) {
	svc, _, events := newWorkflowTestService()
	actor := domain.Actor{ID: "user-1", Name: "Test User"}

	wf, err := svc.CreateWorkflow(context.Background(), actor, domain.CreateWorkflowRequest{
		Name:       "Invoice sync",
		TaskPrompt: "Download all invoices",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, wf.ID)
	assert.Equal(t, domain.WorkflowStatusActive, wf.Status)

	created, err := events.Find(context.Background(), domain.EventFilter{Type: domain.EventWorkflowCreated})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, wf.ID, created[0].RelatedWorkflowID)
}

func TestCreateWorkflowValidatesName(t *testing.T) {
	svc, _, _ := newWorkflowTestService()

	_, err := svc.CreateWorkflow(context.Background(), domain.Actor{}, domain.CreateWorkflowRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidWorkflowName)
}

func TestDeleteWorkflowRecordsName(t *testing.T) {
	svc, _, events := newWorkflowTestService()
	actor := domain.Actor{ID: "user-1", Name: "Test User"}

	wf, err := svc.CreateWorkflow(context.Background(), actor, domain.CreateWorkflowRequest{Name: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkflow(context.Background(), actor, wf.ID))

	deleted, err := events.Find(context.Background(), domain.EventFilter{Type: domain.EventWorkflowDeleted})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "Short lived", deleted[0].Metadata["workflowName"])
	assert.Equal(t, domain.SeverityWarning, deleted[0].Severity)
}

func TestDeleteWorkflowNotFound(t *testing.T) {
	svc, _, _ := newWorkflowTestService()

	err := svc.DeleteWorkflow(context.Background(), domain.Actor{}, "ghost")
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
}

// Audit failure must not block the workflow action itself.
func TestCreateWorkflowSucceedsWhenAuditFails(t *testing.T) {
	workflows := &fakeWorkflowRepo{workflows: map[string]*domain.Workflow{}}
	recorder := NewRecorder(failingHistory{})
	svc := NewWorkflowService(workflows, recorder)

	wf, err := svc.CreateWorkflow(context.Background(), domain.Actor{ID: "u", Name: "U"}, domain.CreateWorkflowRequest{Name: "Resilient"})
	require.NoError(t, err)
	assert.Contains(t, workflows.workflows, wf.ID)
}
