package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amrutdhara/orderbot/internal/models"
)

// DatabaseStore implements Store on PostgreSQL through gorm
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a gorm-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// User operations
func (d *DatabaseStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.PrepareForCreate()

	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email %s: %w", user.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (d *DatabaseStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, "user "+id)
	}
	return &user, nil
}

func (d *DatabaseStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	email = models.NormalizeEmail(email)
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "user "+email)
	}
	return &user, nil
}

// Order operations
func (d *DatabaseStore) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := d.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (d *DatabaseStore) GetOrderForUser(ctx context.Context, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err, "order "+orderID)
	}
	return &order, nil
}

func (d *DatabaseStore) GetOrdersByUser(ctx context.Context, userID string, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	query := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (d *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DatabaseStore) Stats(ctx context.Context) (*models.StoreStats, error) {
	stats := &models.StoreStats{}
	if err := d.db.WithContext(ctx).Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := d.db.WithContext(ctx).Model(&models.Order{}).Count(&stats.Orders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	return stats, nil
}

// translate maps gorm's not-found error to ErrNotFound
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

var _ Store = (*DatabaseStore)(nil)
