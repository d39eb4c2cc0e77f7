package handlers

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/services"
)

// WebhookHandler handles WhatsApp webhook requests
type WebhookHandler struct {
	processor *services.ClickProcessor
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(processor *services.ClickProcessor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

// HandleVerify answers the provider's GET verification handshake.
func (h *WebhookHandler) HandleVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == os.Getenv("META_VERIFY_TOKEN") {
		return c.SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// HandleWebhook processes an inbound delivery batch. Messages are
// walked sequentially in batch order; each one is isolated so a single
// bad record never aborts the rest. The provider always gets a 200;
// anything else triggers redelivery storms.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	body := c.Body()

	services.EachMessage(body, func(msg, contacts gjson.Result) {
		h.processEntry(msg, contacts)
	})

	return c.SendStatus(fiber.StatusOK)
}

func (h *WebhookHandler) processEntry(msg, contacts gjson.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic processing webhook message: %v", r)
		}
	}()

	event, ok := services.ParseClick(msg, contacts)
	if !ok {
		// Not a click (status update, free text, missing context id).
		return
	}

	log.Printf("📱 Click from %s: %q (context %s)", event.FromPhone, event.Label, event.ContextID)

	result, err := h.processor.ProcessClick(event)
	if err != nil {
		log.Printf("❌ Click processing failed for %s: %v", event.FromPhone, err)
		return
	}
	if result != nil && result.RedirectURL != "" {
		log.Printf("🔗 Terminal URL button, redirect: %s", result.RedirectURL)
	}
}
