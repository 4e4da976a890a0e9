package server

import (
	"fmt"
	"strconv"

	"pagecraft/internal/models"
	"pagecraft/internal/repository"
	"pagecraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam reads the :id route parameter as an unsigned integer.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid project ID")
	}
	return uint(id), nil
}

// parsePagination reads skip/limit query parameters.
func parsePagination(c *fiber.Ctx) (int, int) {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 0)
	return skip, limit
}

// GetMyProjects handles GET /api/projects
func (s *Server) GetMyProjects(c *fiber.Ctx) error {
	var filter repository.ProjectFilter
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if raw := c.Query("is_public"); raw != "" {
		isPublic, err := strconv.ParseBool(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("is_public must be a boolean"))
		}
		filter.IsPublic = &isPublic
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	skip, limit := parsePagination(c)
	summaries, err := s.projectService.List(c.UserContext(), s.currentUserID(c), filter, skip, limit)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// GetPublicProjects handles GET /api/projects/public
func (s *Server) GetPublicProjects(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	summaries, err := s.projectService.ListPublic(c.UserContext(), c.Query("category"), skip, limit)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req service.CreateProjectInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.Create(c.UserContext(), s.currentUserID(c), req)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject handles GET /api/projects/:id
func (s *Server) GetProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	project, err := s.projectService.Get(c.UserContext(), id, s.currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

// UpdateProject handles PUT /api/projects/:id
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req service.UpdateProjectInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.Update(c.UserContext(), id, s.currentUserID(c), req)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	if err := s.projectService.Delete(c.UserContext(), id, s.currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}

// DuplicateProject handles POST /api/projects/:id/duplicate
func (s *Server) DuplicateProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	clone, err := s.projectService.Duplicate(c.UserContext(), id, s.currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clone)
}

// CreateProjectVersion handles POST /api/projects/:id/versions
func (s *Server) CreateProjectVersion(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	// Body is optional; an empty snapshot description is fine
	var req struct {
		Description string `json:"description"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}

	version, err := s.projectService.CreateVersion(c.UserContext(), id, s.currentUserID(c), req.Description)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(version)
}

// GetProjectVersions handles GET /api/projects/:id/versions
func (s *Server) GetProjectVersions(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	versions, err := s.projectService.ListVersions(c.UserContext(), id, s.currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(versions)
}

// ExportProject handles GET /api/projects/:id/export?format=html|json
func (s *Server) ExportProject(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	export, err := s.projectService.Export(c.UserContext(), id, s.currentUserID(c), c.Query("format"))
	if err != nil {
		return models.RespondError(c, err)
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Status(fiber.StatusOK).Send(export.Body)
}
