package server

import (
	"errors"
	"net/http"

	"github.com/existflow/ironplan/internal/authz"
	"github.com/existflow/ironplan/internal/model"
	"github.com/existflow/ironplan/internal/store"
	"github.com/labstack/echo/v4"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// handleCreateProject creates a project owned by the caller
func (s *Server) handleCreateProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var errs []fieldError
	if req.Name == "" {
		errs = append(errs, fieldError{Field: "name", Message: "Name is required"})
	}
	if req.Description == "" {
		errs = append(errs, fieldError{Field: "description", Message: "Description is required"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	project, err := s.store.CreateProject(c.Request().Context(), actorID(c), req.Name, req.Description)
	if err != nil {
		return internalError(c, "create project", err)
	}

	return c.JSON(http.StatusCreated, project)
}

// handleListProjects lists the caller's own projects, paginated. The
// query is scoped to the owner, so no per-item check is needed.
func (s *Server) handleListProjects(c echo.Context) error {
	ctx := c.Request().Context()
	actor := actorID(c)
	params := parsePageParams(c)

	total, err := s.store.CountProjects(ctx, actor)
	if err != nil {
		return internalError(c, "count projects", err)
	}

	projects, err := s.store.ListProjects(ctx, actor, params.offset(), params.limit)
	if err != nil {
		return internalError(c, "list projects", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"page":          params.page,
		"limit":         params.limit,
		"totalPages":    totalPages(total, params.limit),
		"totalProjects": total,
		"projects":      projects,
	})
}

// handleUpdateProject updates a project. Only the owner may.
func (s *Server) handleUpdateProject(c echo.Context) error {
	ctx := c.Request().Context()

	project, err := s.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Project not found")
		}
		return internalError(c, "get project", err)
	}

	if d := authz.CanModifyProject(actorID(c), project); !d.Allowed {
		return forbidden(c, d.Reason)
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Status != nil && !model.ValidProjectStatus(*req.Status) {
		return validationFailed(c, []fieldError{{Field: "status", Message: "Invalid project status"}})
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := s.store.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Project not found")
		}
		return internalError(c, "update project", err)
	}

	return c.JSON(http.StatusOK, project)
}

// handleDeleteProject deletes a project. Only the owner may.
func (s *Server) handleDeleteProject(c echo.Context) error {
	ctx := c.Request().Context()

	project, err := s.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Project not found")
		}
		return internalError(c, "get project", err)
	}

	if d := authz.CanModifyProject(actorID(c), project); !d.Allowed {
		return forbidden(c, d.Reason)
	}

	if err := s.store.DeleteProject(ctx, project.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Project not found")
		}
		return internalError(c, "delete project", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Project deleted successfully"})
}
