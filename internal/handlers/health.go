package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amrutdhara/orderbot/internal/storage"
)

const healthCheckTimeout = 3 * time.Second

// SessionCounter reports how many chat sessions are live
type SessionCounter interface {
	ActiveSessions() int
}

// HealthHandler handles health check requests
type HealthHandler struct {
	Version  string
	store    storage.Store
	sessions SessionCounter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, store storage.Store, sessions SessionCounter) *HealthHandler {
	return &HealthHandler{
		Version:  version,
		store:    store,
		sessions: sessions,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Printf("❌ Health check: storage unreachable: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "storage unavailable",
		})
	}

	resp := fiber.Map{
		"status":   "ok",
		"message":  "Amrut-Dhara Bot is running",
		"version":  h.Version,
		"sessions": h.sessions.ActiveSessions(),
	}

	if stats, err := h.store.Stats(ctx); err == nil {
		resp["users"] = stats.Users
		resp["orders"] = stats.Orders
	}

	return c.JSON(resp)
}
