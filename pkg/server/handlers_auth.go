package server

import (
	"crypto/subtle"

	"folio/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Password string `json:"password"`
}

// login exchanges the admin password for a bearer token.
// POST /api/auth/login
func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := s.auth.IssueToken("admin")
	if err != nil {
		s.log.WithError(err).Error("failed to issue token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	return c.JSON(fiber.Map{"token": token})
}

// requireAuth guards the API behind a valid bearer token.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	token, err := auth.ExtractToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	subject, err := s.auth.VerifyToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}

	c.Locals("subject", subject)
	return c.Next()
}
