package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/services"
)

// Registrar creates customer accounts
type Registrar interface {
	Register(ctx context.Context, reg models.UserRegistration) (*models.User, error)
}

// UserHandler handles customer account requests
type UserHandler struct {
	registrar Registrar
}

// NewUserHandler creates a new user handler
func NewUserHandler(registrar Registrar) *UserHandler {
	return &UserHandler{registrar: registrar}
}

// Register creates a customer who can then log in through the bot
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var reg models.UserRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.registrar.Register(c.UserContext(), reg)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrEmailRegistered):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("❌ Registration failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create user",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}
