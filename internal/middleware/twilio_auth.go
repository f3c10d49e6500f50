package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/twilio/twilio-go/client"
)

// ValidateTwilioSignature validates that the webhook request is from Twilio.
// publicURL, when set, replaces the scheme and host seen by the server, which
// differ from the signed URL behind a proxy or load balancer.
func ValidateTwilioSignature(authToken, publicURL string) fiber.Handler {
	validator := client.NewRequestValidator(authToken)

	return func(c *fiber.Ctx) error {
		// Get Twilio signature from header
		twilioSignature := c.Get("X-Twilio-Signature")
		if twilioSignature == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Twilio signature",
			})
		}

		if authToken == "" {
			log.Println("❌ TWILIO_AUTH_TOKEN not set - rejecting webhook")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		// Get all form parameters
		formParams := make(map[string]string)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			formParams[string(key)] = string(value)
		})

		if !validator.Validate(requestURL(c, publicURL), formParams, twilioSignature) {
			log.Printf("⚠️  Rejected webhook with invalid Twilio signature from %s", c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		return c.Next()
	}
}

// requestURL rebuilds the URL Twilio signed
func requestURL(c *fiber.Ctx, publicURL string) string {
	if publicURL != "" {
		return strings.TrimSuffix(publicURL, "/") + c.OriginalURL()
	}
	return c.BaseURL() + c.OriginalURL()
}
