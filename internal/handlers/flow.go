package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/services"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// FlowHandler exposes the flow authoring endpoints
type FlowHandler struct {
	flows *services.FlowService
}

// NewFlowHandler creates a new flow handler
func NewFlowHandler(flows *services.FlowService) *FlowHandler {
	return &FlowHandler{flows: flows}
}

// CreateFlow creates a new draft flow
func (h *FlowHandler) CreateFlow(c *fiber.Ctx) error {
	var flow models.FlowDefinition
	if err := c.BodyParser(&flow); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flow payload",
		})
	}

	if err := h.flows.CreateDraft(&flow); err != nil {
		if errors.Is(err, services.ErrDuplicateFlowName) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(flow)
}

// GetFlow returns a flow with its steps and button links
func (h *FlowHandler) GetFlow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flow id",
		})
	}

	flow, err := h.flows.Get(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Flow not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(flow)
}

// ListFlows lists a business's flows, ?published=true for published ones
func (h *FlowHandler) ListFlows(c *fiber.Ctx) error {
	businessID := c.QueryInt("business_id")
	if businessID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "business_id is required",
		})
	}

	var (
		flows []*models.FlowDefinition
		err   error
	)
	if c.Query("published") == "true" {
		flows, err = h.flows.ListPublished(uint(businessID))
	} else {
		flows, err = h.flows.ListDrafts(uint(businessID))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"flows": flows,
		"count": len(flows),
	})
}

// PublishFlow flips the published flag (one-way)
func (h *FlowHandler) PublishFlow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flow id",
		})
	}

	if err := h.flows.Publish(uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Flow not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteFlow deletes a flow that no outbound message references
func (h *FlowHandler) DeleteFlow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flow id",
		})
	}

	if err := h.flows.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Flow not found",
			})
		case errors.Is(err, services.ErrFlowInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
