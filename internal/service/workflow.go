package service

import (
	"context"
	"time"

	"dashboard-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type WorkflowRepository interface {
	Create(ctx context.Context, wf *domain.Workflow) error
	GetByID(ctx context.Context, id string) (*domain.Workflow, error)
	List(ctx context.Context) ([]domain.Workflow, error)
	Update(ctx context.Context, id string, req domain.UpdateWorkflowRequest) error
	Delete(ctx context.Context, id string) error
}

type WorkflowService struct {
	workflows WorkflowRepository
	recorder  *Recorder
}

func NewWorkflowService(workflows WorkflowRepository, recorder *Recorder) *WorkflowService {
	return &WorkflowService{
		workflows: workflows,
		recorder:  recorder,
	}
}

func (s *WorkflowService) CreateWorkflow(ctx context.Context, actor domain.Actor, req domain.CreateWorkflowRequest) (*domain.Workflow, error) {
	if err := domain.ValidateWorkflowName(req.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wf := &domain.Workflow{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		TaskPrompt:  req.TaskPrompt,
		Status:      domain.WorkflowStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.workflows.Create(ctx, wf); err != nil {
		log.WithError(err).WithField("name", req.Name).Error("Failed to create workflow")
		return nil, err
	}

	s.recorder.WorkflowCreated(ctx, actor, wf)
	return wf, nil
}

func (s *WorkflowService) GetWorkflow(ctx context.Context, id string) (*domain.Workflow, error) {
	if id == "" {
		return nil, domain.ErrWorkflowNotFound
	}
	return s.workflows.GetByID(ctx, id)
}

func (s *WorkflowService) ListWorkflows(ctx context.Context) ([]domain.Workflow, error) {
	return s.workflows.List(ctx)
}

func (s *WorkflowService) UpdateWorkflow(ctx context.Context, actor domain.Actor, id string, req domain.UpdateWorkflowRequest) (*domain.Workflow, error) {
	if id == "" {
		return nil, domain.ErrWorkflowNotFound
	}
	if req.Name != nil {
		if err := domain.ValidateWorkflowName(*req.Name); err != nil {
			return nil, err
		}
	}

	if err := s.workflows.Update(ctx, id, req); err != nil {
		return nil, err
	}

	wf, err := s.workflows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recorder.WorkflowEdited(ctx, actor, wf)
	return wf, nil
}

func (s *WorkflowService) DeleteWorkflow(ctx context.Context, actor domain.Actor, id string) error {
	if id == "" {
		return domain.ErrWorkflowNotFound
	}

	// Fetch first so the audit event can carry the name.
	wf, err := s.workflows.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.workflows.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.WorkflowDeleted(ctx, actor, wf.ID, wf.Name)
	return nil
}
