package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/services"
)

// TemplateHandler exposes manual template catalog sync
type TemplateHandler struct {
	templates *services.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// UpsertTemplate inserts or refreshes one template metadata row
func (h *TemplateHandler) UpsertTemplate(c *fiber.Ctx) error {
	var meta models.TemplateMeta
	if err := c.BodyParser(&meta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template payload",
		})
	}

	if err := h.templates.UpsertMeta(&meta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(meta)
}
