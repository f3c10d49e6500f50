package conversation

import (
	"context"

	"github.com/amrutdhara/orderbot/internal/models"
)

// Account is an authenticated customer
type Account struct {
	ID    string
	Email string
}

// Authenticator verifies customer credentials. The returned error text is shown to the user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Account, error)
}

// OrderStore persists and queries orders
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Order, error)
	// GetByID must return an error when the order is not owned by accountID
	GetByID(ctx context.Context, orderID, accountID string) (*models.Order, error)
}

// Notifier announces new orders. Channel failures are handled inside the notifier.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, order *models.Order, email string) error
}
