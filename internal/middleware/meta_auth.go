package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ValidateMetaSignature validates that the webhook request is from Meta
func ValidateMetaSignature() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get signature from header: "sha256=<hex>"
		signature := c.Get("X-Hub-Signature-256")
		if signature == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Missing signature",
			})
		}

		appSecret := os.Getenv("META_APP_SECRET")
		if appSecret == "" {
			// Log error but don't expose to client
			fmt.Println("ERROR: META_APP_SECRET not set")
			return c.Status(500).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		expected := calculateMetaSignature(appSecret, c.Body())
		provided := strings.TrimPrefix(signature, "sha256=")

		if !hmac.Equal([]byte(expected), []byte(provided)) {
			return c.Status(401).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		return c.Next()
	}
}

// calculateMetaSignature calculates the expected signature over the raw body
func calculateMetaSignature(appSecret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(appSecret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
