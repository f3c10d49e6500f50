package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/amrutdhara/orderbot/internal/handlers"
	"github.com/amrutdhara/orderbot/internal/middleware"
)

// Dependencies are the handlers and settings the routes are built from
type Dependencies struct {
	Webhook  *handlers.WebhookHandler
	WhatsApp *handlers.WhatsAppHandler
	Health   *handlers.HealthHandler
	Users    *handlers.UserHandler

	TwilioAuthToken          string
	PublicURL                string
	DisableWebhookValidation bool
	PublicDir                string
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// Health check
	app.Get("/health", deps.Health.Check)

	// API routes
	api := app.Group("/api")
	api.Post("/users", deps.Users.Register)

	// ========== WEBHOOK ROUTES ==========
	app.Post("/webhook", deps.Webhook.HandleMessage)

	webhooks := app.Group("/webhook")
	webhooks.Get("/whatsapp", deps.WhatsApp.VerifyWebhook)
	webhooks.Post("/whatsapp", deps.WhatsApp.HandleCloudWebhook)

	if deps.DisableWebhookValidation {
		// Development: Skip validation for ngrok
		log.Println("⚠️  Twilio webhook validation DISABLED")
		webhooks.Post("/twilio", deps.WhatsApp.HandleTwilioWebhook)
	} else {
		// Production: Validate webhook signature
		webhooks.Post("/twilio",
			middleware.ValidateTwilioSignature(deps.TwilioAuthToken, deps.PublicURL),
			deps.WhatsApp.HandleTwilioWebhook,
		)
	}

	// Web demo UI and bottle images
	if deps.PublicDir != "" {
		app.Static("/", deps.PublicDir)
	}
}
