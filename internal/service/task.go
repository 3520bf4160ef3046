package service

import (
	"context"
	"errors"
	"fmt"

	"dashboard-service/internal/browseruse"
	"dashboard-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type AutomationClient interface {
	RunTask(ctx context.Context, prompt string) (*browseruse.TaskResponse, error)
	GetTask(ctx context.Context, taskID string) (*browseruse.TaskResponse, error)
	StopTask(ctx context.Context, taskID string) error
	PauseTask(ctx context.Context, taskID string) error
	ResumeTask(ctx context.Context, taskID string) error
}

type TaskService struct {
	client    AutomationClient
	workflows WorkflowRepository
	recorder  *Recorder
}

func NewTaskService(client AutomationClient, workflows WorkflowRepository, recorder *Recorder) *TaskService {
	return &TaskService{
		client:    client,
		workflows: workflows,
		recorder:  recorder,
	}
}

// RunTask forwards a run request to the automation API. The prompt comes
// from the request, or from the referenced workflow when the request carries
// none. Completion outcomes arrive later via the webhook, not here.
func (s *TaskService) RunTask(ctx context.Context, actor domain.Actor, req domain.RunTaskRequest) (*domain.Task, error) {
	prompt := req.Prompt
	if req.WorkflowID != "" {
		wf, err := s.workflows.GetByID(ctx, req.WorkflowID)
		if err != nil {
			return nil, err
		}
		if prompt == "" {
			prompt = wf.TaskPrompt
		}
		s.recorder.TemplateUsed(ctx, actor, wf.ID, wf.Name)
	}
	if prompt == "" {
		return nil, fmt.Errorf("%w: field %q is required", domain.ErrValidation, "prompt")
	}

	resp, err := s.client.RunTask(ctx, prompt)
	if err != nil {
		log.WithError(err).Error("Failed to start browser-use task")
		return nil, err
	}

	return s.toTask(resp, req.WorkflowID), nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	resp, err := s.client.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, browseruse.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return s.toTask(resp, ""), nil
}

func (s *TaskService) StopTask(ctx context.Context, actor domain.Actor, taskID string) error {
	if err := s.client.StopTask(ctx, taskID); err != nil {
		log.WithError(err).WithField("task_id", taskID).Error("Failed to stop task")
		return err
	}
	s.recorder.TaskStopped(ctx, actor, taskID)
	return nil
}

func (s *TaskService) PauseTask(ctx context.Context, actor domain.Actor, taskID string) error {
	if err := s.client.PauseTask(ctx, taskID); err != nil {
		log.WithError(err).WithField("task_id", taskID).Error("Failed to pause task")
		return err
	}
	s.recorder.TaskPaused(ctx, actor, taskID)
	return nil
}

func (s *TaskService) ResumeTask(ctx context.Context, actor domain.Actor, taskID string) error {
	if err := s.client.ResumeTask(ctx, taskID); err != nil {
		log.WithError(err).WithField("task_id", taskID).Error("Failed to resume task")
		return err
	}
	s.recorder.TaskResumed(ctx, actor, taskID)
	return nil
}

// RecordOutcome is the webhook path: a finished or failed remote task turns
// into a task_executed history event with its duration.
func (s *TaskService) RecordOutcome(ctx context.Context, actor domain.Actor, workflowID, taskID string, success bool, durationMS float64) {
	workflowName := ""
	if workflowID != "" {
		if wf, err := s.workflows.GetByID(ctx, workflowID); err == nil {
			workflowName = wf.Name
		}
	}
	s.recorder.TaskExecuted(ctx, actor, workflowID, taskID, success, durationMS, workflowName)
}

func (s *TaskService) toTask(resp *browseruse.TaskResponse, workflowID string) *domain.Task {
	return &domain.Task{
		ID:         resp.ID,
		WorkflowID: workflowID,
		Prompt:     resp.Task,
		Status:     resp.Status,
		Output:     resp.Output,
		LiveURL:    resp.LiveURL,
	}
}
