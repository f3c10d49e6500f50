package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ReplySender delivers a bot reply over WhatsApp
type ReplySender interface {
	SendWhatsApp(to, message string) error
}

// WhatsAppHandler handles WhatsApp webhook requests from the Cloud API and from Twilio
type WhatsAppHandler struct {
	bot         MessageProcessor
	sender      ReplySender // nil when Twilio is not configured
	verifyToken string
}

// NewWhatsAppHandler creates a new WhatsApp handler. sender may be nil.
func NewWhatsAppHandler(bot MessageProcessor, sender ReplySender, verifyToken string) *WhatsAppHandler {
	return &WhatsAppHandler{
		bot:         bot,
		sender:      sender,
		verifyToken: verifyToken,
	}
}

// CloudWebhookPayload is the WhatsApp Business Cloud API notification body
type CloudWebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Messages []CloudMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// CloudMessage is one inbound WhatsApp message
type CloudMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// firstMessage returns the first message of the first change, if any
func (p *CloudWebhookPayload) firstMessage() (CloudMessage, bool) {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return CloudMessage{}, false
	}
	messages := p.Entry[0].Changes[0].Value.Messages
	if len(messages) == 0 {
		return CloudMessage{}, false
	}
	return messages[0], true
}

// HandleCloudWebhook processes a Cloud API notification. It always acknowledges with 200
// so the platform does not redeliver; replies are logged until a Cloud API sender exists.
func (h *WhatsAppHandler) HandleCloudWebhook(c *fiber.Ctx) error {
	var payload CloudWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing WhatsApp webhook: %v", err)
		return c.SendStatus(fiber.StatusOK)
	}

	msg, ok := payload.firstMessage()
	if !ok || msg.From == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	log.Printf("📱 WhatsApp message from %s", msg.From)

	reply := h.bot.HandleMessage(c.UserContext(), msg.From, msg.Text.Body)
	log.Printf("📤 Response to send to %s (%d chars)", msg.From, len(reply.Text))

	return c.SendStatus(fiber.StatusOK)
}

// VerifyWebhook answers the Cloud API subscription handshake
func (h *WhatsAppHandler) VerifyWebhook(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		log.Println("✅ WhatsApp webhook verified")
		return c.Status(fiber.StatusOK).SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// TwilioWebhookPayload represents incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // WhatsApp number (whatsapp:+919876543210)
	To         string `form:"To"`   // Your Twilio number
	Body       string `form:"Body"` // Message text
	NumMedia   string `form:"NumMedia"`
}

// HandleTwilioWebhook processes a Twilio WhatsApp message and replies through Twilio
func (h *WhatsAppHandler) HandleTwilioWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Status callbacks carry no body
	if payload.Body == "" || payload.From == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	from := strings.TrimPrefix(payload.From, "whatsapp:")
	log.Printf("📱 WhatsApp message from %s", from)

	reply := h.bot.HandleMessage(c.UserContext(), from, payload.Body)

	if h.sender == nil {
		log.Printf("📤 Response for %s not sent - Twilio not configured", from)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := h.sender.SendWhatsApp(from, reply.Text); err != nil {
		log.Printf("❌ Failed to send WhatsApp response: %v", err)
	} else {
		log.Printf("✅ Response sent to %s", from)
	}

	// Acknowledge webhook receipt
	return c.SendStatus(fiber.StatusOK)
}
