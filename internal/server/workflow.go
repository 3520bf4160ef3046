package server

import (
	"context"
	"net/http"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
)

type WorkflowService interface {
	CreateWorkflow(ctx context.Context, actor domain.Actor, req domain.CreateWorkflowRequest) (*domain.Workflow, error)
	GetWorkflow(ctx context.Context, id string) (*domain.Workflow, error)
	ListWorkflows(ctx context.Context) ([]domain.Workflow, error)
	UpdateWorkflow(ctx context.Context, actor domain.Actor, id string, req domain.UpdateWorkflowRequest) (*domain.Workflow, error)
	DeleteWorkflow(ctx context.Context, actor domain.Actor, id string) error
}

type workflowServer struct {
	workflows WorkflowService
	actor     domain.Actor
}

func NewWorkflowServer(workflows WorkflowService, actor domain.Actor) *workflowServer {
	return &workflowServer{
		workflows: workflows,
		actor:     actor,
	}
}

func (s *workflowServer) CreateWorkflow(c echo.Context) error {
	var req domain.CreateWorkflowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	wf, err := s.workflows.CreateWorkflow(c.Request().Context(), s.actor, req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, wf)
}

func (s *workflowServer) GetWorkflow(c echo.Context) error {
	wf, err := s.workflows.GetWorkflow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, wf)
}

func (s *workflowServer) ListWorkflows(c echo.Context) error {
	workflows, err := s.workflows.ListWorkflows(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	if workflows == nil {
		workflows = []domain.Workflow{}
	}
	return c.JSON(http.StatusOK, workflows)
}

func (s *workflowServer) UpdateWorkflow(c echo.Context) error {
	var req domain.UpdateWorkflowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	wf, err := s.workflows.UpdateWorkflow(c.Request().Context(), s.actor, c.Param("id"), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, wf)
}

func (s *workflowServer) DeleteWorkflow(c echo.Context) error {
	if err := s.workflows.DeleteWorkflow(c.Request().Context(), s.actor, c.Param("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
