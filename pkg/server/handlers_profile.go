package server

import (
	"encoding/json"
	"net/url"

	"folio/pkg/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

type categoryRequest struct {
	Name  string             `json:"name"`
	Items profile.StringList `json:"items"`
	Type  string             `json:"type"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

// getProfile returns the read-only projection of the profile document.
// GET /api/profile
func (s *Server) getProfile(c *fiber.Ctx) error {
	doc, err := s.profiles.Load(c.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to load profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// addItem appends an item to an ordered section.
// POST /api/profile/:section/items
func (s *Server) addItem(c *fiber.Ctx) error {
	body := c.Body()
	if !gjson.ValidBytes(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := s.profiles.AddItem(c.Context(), c.Params("section"), json.RawMessage(body))
	if err != nil {
		s.log.WithError(err).Error("failed to add item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// updateItem replaces an item at an index in an ordered section.
// PUT /api/profile/:section/items/:index
func (s *Server) updateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid index",
		})
	}

	body := c.Body()
	if !gjson.ValidBytes(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := s.profiles.UpdateItem(c.Context(), c.Params("section"), index, json.RawMessage(body))
	if err != nil {
		s.log.WithError(err).Error("failed to update item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// removeItem deletes an item at an index in an ordered section.
// DELETE /api/profile/:section/items/:index
func (s *Server) removeItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid index",
		})
	}

	doc, err := s.profiles.RemoveItem(c.Context(), c.Params("section"), index)
	if err != nil {
		s.log.WithError(err).Error("failed to remove item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// moveItem swaps an item with its neighbor.
// POST /api/profile/:section/items/:index/move
func (s *Server) moveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid index",
		})
	}

	var req moveRequest
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := s.profiles.MoveItem(c.Context(), c.Params("section"), index, req.Direction)
	if err != nil {
		s.log.WithError(err).Error("failed to move item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// addCategory creates or replaces a category in a category-keyed section.
// POST /api/profile/:section/categories
func (s *Server) addCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category name is required",
		})
	}

	doc, err := s.profiles.AddCategory(c.Context(), c.Params("section"), req.Name, req.Items, req.Type)
	if err != nil {
		s.log.WithError(err).Error("failed to add category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// editCategory renames and updates a category.
// PUT /api/profile/:section/categories/:name
func (s *Server) editCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	oldName := pathParam(c, "name")
	newName := req.Name
	if newName == "" {
		newName = oldName
	}

	doc, err := s.profiles.EditCategory(c.Context(), c.Params("section"), oldName, newName, req.Items, req.Type)
	if err != nil {
		s.log.WithError(err).Error("failed to edit category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// removeCategory deletes a category.
// DELETE /api/profile/:section/categories/:name
func (s *Server) removeCategory(c *fiber.Ctx) error {
	doc, err := s.profiles.RemoveCategory(c.Context(), c.Params("section"), pathParam(c, "name"))
	if err != nil {
		s.log.WithError(err).Error("failed to remove category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(projectProfile(doc))
}

// projectProfile strips internal fields from the document before it leaves
// the API.
func projectProfile(doc profile.Document) (projected profile.Document) {
	projected = doc
	projected.ID = ""
	return projected
}

// pathParam returns a URL-decoded route parameter; category names may
// contain spaces and other escaped characters.
func pathParam(c *fiber.Ctx, name string) (value string) {
	value = c.Params(name)
	if decoded, err := url.PathUnescape(value); err == nil {
		value = decoded
	}
	return value
}
