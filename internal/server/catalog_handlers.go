package server

import (
	"pagecraft/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTemplates handles GET /api/templates?category=
func (s *Server) GetTemplates(c *fiber.Ctx) error {
	templates, err := s.catalogService.ListTemplates(c.UserContext(), c.Query("category"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(templates)
}

// GetTemplateCategories handles GET /api/templates/categories
func (s *Server) GetTemplateCategories(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(s.catalogService.TemplateCategories())
}

// GetTemplateContent handles GET /api/templates/:id
func (s *Server) GetTemplateContent(c *fiber.Ctx) error {
	content, err := s.catalogService.GetTemplateContent(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(content)
}

// GetComponents handles GET /api/components
func (s *Server) GetComponents(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(s.catalogService.Components())
}

// GetComponentCategories handles GET /api/components/categories
func (s *Server) GetComponentCategories(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(s.catalogService.ComponentCategories())
}

// GetComponentsByCategory handles GET /api/components/:category
func (s *Server) GetComponentsByCategory(c *fiber.Ctx) error {
	list, err := s.catalogService.ComponentsByCategory(c.Params("category"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// GetComponent handles GET /api/components/:category/:id
func (s *Server) GetComponent(c *fiber.Ctx) error {
	component, err := s.catalogService.Component(c.Params("category"), c.Params("id"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(component)
}
