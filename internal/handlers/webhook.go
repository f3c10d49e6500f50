package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/amrutdhara/orderbot/internal/conversation"
)

// MessageProcessor turns one inbound chat message into a reply
type MessageProcessor interface {
	HandleMessage(ctx context.Context, userID, message string) conversation.Reply
}

// WebhookHandler serves the generic JSON chat endpoint used by the web UI
type WebhookHandler struct {
	bot MessageProcessor
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(bot MessageProcessor) *WebhookHandler {
	return &WebhookHandler{bot: bot}
}

// WebhookRequest is the inbound chat message
type WebhookRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// WebhookResponse is the reply envelope
type WebhookResponse struct {
	Success      bool                      `json:"success"`
	Response     string                    `json:"response"`
	Images       []conversation.Image      `json:"images"`
	MenuButtons  []conversation.MenuButton `json:"menuButtons"`
	Notification bool                      `json:"notification"`
}

// HandleMessage processes one chat message and returns the bot's reply
func (h *WebhookHandler) HandleMessage(c *fiber.Ctx) error {
	var req WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.UserID) == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: userId and message",
		})
	}

	log.Printf("💬 Message received from %s", req.UserID)

	reply := h.bot.HandleMessage(c.UserContext(), req.UserID, req.Message)
	return c.JSON(toWebhookResponse(reply))
}

func toWebhookResponse(reply conversation.Reply) WebhookResponse {
	resp := WebhookResponse{
		Success:      true,
		Response:     reply.Text,
		Images:       reply.Images,
		MenuButtons:  reply.MenuButtons,
		Notification: reply.Notification,
	}
	if resp.Images == nil {
		resp.Images = []conversation.Image{}
	}
	if resp.MenuButtons == nil {
		resp.MenuButtons = []conversation.MenuButton{}
	}
	return resp
}
