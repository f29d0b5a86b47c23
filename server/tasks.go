package server

import (
	"errors"
	"net/http"

	"github.com/existflow/ironplan/internal/authz"
	"github.com/existflow/ironplan/internal/model"
	"github.com/existflow/ironplan/internal/store"
	"github.com/labstack/echo/v4"
)

type createTaskRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssignedUserID string `json:"assignedUserId"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// handleCreateTask creates a task under a project. Any authenticated
// caller may; the parent project just has to exist.
func (s *Server) handleCreateTask(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := s.store.GetProject(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Project not found")
		}
		return internalError(c, "get project", err)
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var errs []fieldError
	if req.Title == "" {
		errs = append(errs, fieldError{Field: "title", Message: "Title is required"})
	}
	if req.Description == "" {
		errs = append(errs, fieldError{Field: "description", Message: "Description is required"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	if req.AssignedUserID != "" {
		if _, err := s.store.GetUser(ctx, req.AssignedUserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return validationFailed(c, []fieldError{{Field: "assignedUserId", Message: "Assigned user not found"}})
			}
			return internalError(c, "get assigned user", err)
		}
	}

	task, err := s.store.CreateTask(ctx, c.Param("id"), req.Title, req.Description, req.AssignedUserID)
	if err != nil {
		return internalError(c, "create task", err)
	}

	return c.JSON(http.StatusCreated, task)
}

// handleListProjectTasks lists a project's tasks with assignee details,
// optionally filtered by status
func (s *Server) handleListProjectTasks(c echo.Context) error {
	ctx := c.Request().Context()
	projectID := c.Param("id")

	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Project not found")
		}
		return internalError(c, "get project", err)
	}

	tasks, err := s.store.ListProjectTasks(ctx, projectID, c.QueryParam("status"))
	if err != nil {
		return internalError(c, "list project tasks", err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// handleListTasks lists tasks across projects, paginated. Filters
// compose as an AND-conjunction; an absent parameter never constrains
// on that field.
func (s *Server) handleListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	params := parsePageParams(c)

	filter := store.TaskFilter{
		ProjectID:      c.QueryParam("projectId"),
		Status:         c.QueryParam("status"),
		AssignedUserID: c.QueryParam("assignedUserId"),
	}

	total, err := s.store.CountTasks(ctx, filter)
	if err != nil {
		return internalError(c, "count tasks", err)
	}

	tasks, err := s.store.ListTasks(ctx, filter, params.offset(), params.limit)
	if err != nil {
		return internalError(c, "list tasks", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"page":       params.page,
		"limit":      params.limit,
		"totalPages": totalPages(total, params.limit),
		"totalTasks": total,
		"tasks":      tasks,
	})
}

// handleUpdateTask updates a task. Only the current assignee may; an
// unassigned task is not updatable.
func (s *Server) handleUpdateTask(c echo.Context) error {
	ctx := c.Request().Context()

	task, err := s.store.GetTask(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		return internalError(c, "get task", err)
	}

	if d := authz.CanUpdateTask(actorID(c), task); !d.Allowed {
		return forbidden(c, d.Reason)
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Status != nil && !model.ValidTaskStatus(*req.Status) {
		return validationFailed(c, []fieldError{{Field: "status", Message: "Invalid task status"}})
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		return internalError(c, "update task", err)
	}

	return c.JSON(http.StatusOK, task)
}

// handleDeleteTask deletes a task. Unlike update, no assignee check is
// made: any authenticated caller may delete.
func (s *Server) handleDeleteTask(c echo.Context) error {
	ctx := c.Request().Context()

	task, err := s.store.GetTask(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		return internalError(c, "get task", err)
	}

	if d := authz.CanDeleteTask(actorID(c), task); !d.Allowed {
		return forbidden(c, d.Reason)
	}

	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		return internalError(c, "delete task", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}
