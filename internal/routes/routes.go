package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/handlers"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, webhookHandler *handlers.WebhookHandler, flowHandler *handlers.FlowHandler, templateHandler *handlers.TemplateHandler) {

	// ========== API ROUTES ==========
	api := app.Group("/api")

	flows := api.Group("/flows")
	flows.Post("/", flowHandler.CreateFlow)
	flows.Get("/", flowHandler.ListFlows)
	flows.Get("/:id", flowHandler.GetFlow)
	flows.Post("/:id/publish", flowHandler.PublishFlow)
	flows.Delete("/:id", flowHandler.DeleteFlow)

	templates := api.Group("/templates")
	templates.Post("/", templateHandler.UpsertTemplate)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// Provider verification handshake
	webhooks.Get("/whatsapp", webhookHandler.HandleVerify)

	// WhatsApp webhook - ENVIRONMENT-AWARE VALIDATION
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		// Development: skip validation for ngrok
		webhooks.Post("/whatsapp", webhookHandler.HandleWebhook)
		if os.Getenv("ENVIRONMENT") == "development" {
			println("⚠️  WhatsApp webhook validation DISABLED for development")
		}
	} else {
		// Production: validate webhook signature
		webhooks.Post("/whatsapp", middleware.ValidateMetaSignature(), webhookHandler.HandleWebhook)
	}
}
