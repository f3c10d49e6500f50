package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/amrutdhara/orderbot/internal/models"
)

// MemoryStore holds all data in memory for local testing
type MemoryStore struct {
	users  map[string]*models.User
	orders map[string]*models.Order

	// Mutexes for thread safety
	userMu  sync.RWMutex
	orderMu sync.RWMutex

	now func() time.Time
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*models.User),
		orders: make(map[string]*models.Order),
		now:    time.Now,
	}
}

// User operations
func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user.PrepareForCreate()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("email %s: %w", user.Email, ErrDuplicate)
		}
	}

	now := m.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	m.users[user.ID] = &stored
	return user, nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

// Order operations
func (m *MemoryStore) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	order.PrepareForCreate()
	if _, exists := m.orders[order.ID]; exists {
		return nil, fmt.Errorf("order %s: %w", order.ID, ErrDuplicate)
	}

	now := m.now()
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	m.orders[order.ID] = &stored
	return order, nil
}

func (m *MemoryStore) GetOrderForUser(_ context.Context, orderID, userID string) (*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	order, exists := m.orders[orderID]
	if !exists || order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	copied := *order
	return &copied, nil
}

func (m *MemoryStore) GetOrdersByUser(_ context.Context, userID string, limit int) ([]*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	var orders []*models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			copied := *order
			orders = append(orders, &copied)
		}
	}

	// Newest first
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryStore) Stats(_ context.Context) (*models.StoreStats, error) {
	m.userMu.RLock()
	users := len(m.users)
	m.userMu.RUnlock()

	m.orderMu.RLock()
	orders := len(m.orders)
	m.orderMu.RUnlock()

	return &models.StoreStats{Users: int64(users), Orders: int64(orders)}, nil
}

var _ Store = (*MemoryStore)(nil)
