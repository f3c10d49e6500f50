package storage

import (
	"context"
	"errors"

	"github.com/amrutdhara/orderbot/internal/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique field is already taken
var ErrDuplicate = errors.New("record already exists")

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Order operations
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrderForUser(ctx context.Context, orderID, userID string) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID string, limit int) ([]*models.Order, error)

	// Health
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (*models.StoreStats, error)
}
