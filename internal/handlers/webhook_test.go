package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/services"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

func webhookApp(t *testing.T) *fiber.App {
	t.Helper()

	store := storage.NewMemoryStore()
	processor := services.NewClickProcessor(
		store,
		services.NewOriginResolver(store),
		services.NewButtonMatcher(store),
		services.NewEligibilityEvaluator(store),
		services.NewJourneyTracker(store, nil),
		services.NewFlowEngine(store, services.NewSenderResolver(store), services.NewTemplateService(store), nil),
	)
	handler := NewWebhookHandler(processor)

	app := fiber.New()
	app.Get("/webhook/whatsapp", handler.HandleVerify)
	app.Post("/webhook/whatsapp", handler.HandleWebhook)
	return app
}

func TestVerifyHandshake(t *testing.T) {
	t.Setenv("META_VERIFY_TOKEN", "grapefruit")
	app := webhookApp(t)

	req := httptest.NewRequest("GET",
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=grapefruit&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	challenge, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(challenge))
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	t.Setenv("META_VERIFY_TOKEN", "grapefruit")
	app := webhookApp(t)

	req := httptest.NewRequest("GET",
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=melon&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestWebhookAlwaysAnswers200(t *testing.T) {
	app := webhookApp(t)

	bodies := []string{
		`{}`,
		`not json`,
		// A click whose context id matches nothing: skipped, still 200.
		`{"entry":[{"changes":[{"value":{"messages":[{
			"from":"15550100","type":"button",
			"button":{"text":"Yes"},
			"context":{"id":"wamid.UNKNOWN"}}]}}]}]}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest("POST", "/webhook/whatsapp", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
}
