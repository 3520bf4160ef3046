package server

import (
	"context"
	"net/http"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
)

type TaskService interface {
	RunTask(ctx context.Context, actor domain.Actor, req domain.RunTaskRequest) (*domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	StopTask(ctx context.Context, actor domain.Actor, taskID string) error
	PauseTask(ctx context.Context, actor domain.Actor, taskID string) error
	ResumeTask(ctx context.Context, actor domain.Actor, taskID string) error
}

type taskServer struct {
	tasks TaskService
	actor domain.Actor
}

func NewTaskServer(tasks TaskService, actor domain.Actor) *taskServer {
	return &taskServer{
		tasks: tasks,
		actor: actor,
	}
}

func (s *taskServer) RunTask(c echo.Context) error {
	var req domain.RunTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	task, err := s.tasks.RunTask(c.Request().Context(), s.actor, req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *taskServer) GetTask(c echo.Context) error {
	task, err := s.tasks.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *taskServer) StopTask(c echo.Context) error {
	return s.lifecycle(c, s.tasks.StopTask)
}

func (s *taskServer) PauseTask(c echo.Context) error {
	return s.lifecycle(c, s.tasks.PauseTask)
}

func (s *taskServer) ResumeTask(c echo.Context) error {
	return s.lifecycle(c, s.tasks.ResumeTask)
}

func (s *taskServer) lifecycle(c echo.Context, op func(context.Context, domain.Actor, string) error) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "task ID is required",
		})
	}
	if err := op(c.Request().Context(), s.actor, id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
