package server

import (
	"folio/pkg/page"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type applyPresetRequest struct {
	ID string `json:"id"`
}

// getPage returns the page composition, or JSON null when the page has
// never been configured.
// GET /api/page
func (s *Server) getPage(c *fiber.Ctx) error {
	doc, err := s.pages.Load(c.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to load layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load layout",
		})
	}

	if doc == nil {
		return c.JSON(nil)
	}

	return c.JSON(projectPage(*doc))
}

// putPage replaces the page composition wholesale.
// PUT /api/page
func (s *Server) putPage(c *fiber.Ctx) error {
	var doc page.Document
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// The projection never carries the internal id, so a round-tripped
	// document must reclaim the stored one instead of minting a new one.
	existing, err := s.pages.Load(c.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to load layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save layout",
		})
	}
	if existing != nil {
		doc.ID = existing.ID
	}

	saved, err := s.pages.Save(c.Context(), doc)
	if err != nil {
		s.log.WithError(err).Error("failed to save layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save layout",
		})
	}

	return c.JSON(projectPage(saved))
}

// listPresets returns the fixed preset catalog.
// GET /api/page/presets
func (s *Server) listPresets(c *fiber.Ctx) error {
	return c.JSON(page.Catalog())
}

// currentPreset reports which preset the stored composition structurally
// matches, if any.
// GET /api/page/preset
func (s *Server) currentPreset(c *fiber.Ctx) error {
	doc, err := s.pages.Load(c.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to load layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load layout",
		})
	}

	if doc == nil {
		return c.JSON(fiber.Map{"preset": nil})
	}

	id, matched := page.MatchPreset(*doc)
	if !matched {
		return c.JSON(fiber.Map{"preset": nil})
	}

	return c.JSON(fiber.Map{"preset": id})
}

// applyPreset replaces the composition structure with a named preset.
// POST /api/page/preset
func (s *Server) applyPreset(c *fiber.Ctx) error {
	var req applyPresetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := s.pages.ApplyPreset(c.Context(), req.ID)
	if err != nil {
		if errors.Is(err, page.ErrPresetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Preset not found",
			})
		}
		s.log.WithError(err).Error("failed to apply preset")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to apply preset",
		})
	}

	return c.JSON(projectPage(doc))
}

// listSections returns the section descriptor catalog for the composition
// host.
// GET /api/sections
func (s *Server) listSections(c *fiber.Ctx) error {
	return c.JSON(s.registry.List())
}

// projectPage strips internal fields from the document before it leaves
// the API.
func projectPage(doc page.Document) (projected page.Document) {
	projected = doc
	projected.ID = ""
	return projected
}
