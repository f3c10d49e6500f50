package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/storage"
)

// ErrOrderNotFound covers both missing orders and orders owned by someone else
var ErrOrderNotFound = errors.New("order not found")

// OrderService persists and queries customer orders
type OrderService struct {
	store storage.Store
}

// NewOrderService creates a new order service
func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store}
}

// Create validates and stores a new order. The stored copy carries the generated ID.
func (s *OrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.UserID == "" {
		return nil, errors.New("order has no customer")
	}
	if order.Quantity < models.MinOrderQuantity || order.Quantity > models.MaxOrderQuantity {
		return nil, fmt.Errorf("quantity must be between %d and %d", models.MinOrderQuantity, models.MaxOrderQuantity)
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		log.Printf("❌ Failed to store order for %s: %v", order.UserID, err)
		return nil, fmt.Errorf("could not save order: %w", err)
	}

	log.Printf("✅ Order created: %s (%dx %s) for user %s", created.ID, created.Quantity, created.BottleType, created.UserID)
	return created, nil
}

// ListByAccount returns the account's orders, newest first
func (s *OrderService) ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Order, error) {
	orders, err := s.store.GetOrdersByUser(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("could not load orders: %w", err)
	}
	return orders, nil
}

// GetByID returns an order only if it belongs to accountID
func (s *OrderService) GetByID(ctx context.Context, orderID, accountID string) (*models.Order, error) {
	order, err := s.store.GetOrderForUser(ctx, orderID, accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("could not load order: %w", err)
	}
	return order, nil
}
