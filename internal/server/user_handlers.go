package server

import (
	"pagecraft/internal/models"
	"pagecraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), s.currentUserID(c), req)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
