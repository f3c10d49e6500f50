package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a water bottle delivery order placed through the bot
type Order struct {
	ID                    string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID                string    `json:"user_id" gorm:"index;not null"`
	BottleType            string    `json:"bottle_type" gorm:"not null"` // "200ml", "300ml", "500ml"
	Quantity              int       `json:"quantity" gorm:"not null"`
	DeliveryAddress       string    `json:"delivery_address" gorm:"not null"`
	PreferredDeliveryDate time.Time `json:"preferred_delivery_date" gorm:"type:date;not null"`
	OrderStatus           string    `json:"order_status" gorm:"default:Pending"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bottle types offered by the business
const (
	Bottle200ml = "200ml"
	Bottle300ml = "300ml"
	Bottle500ml = "500ml"
)

// OrderStatus constants
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusDelivered = "Delivered"
)

// Order quantity limits
const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 1000
)

// DeliveryDateLayout is the wire and display format of PreferredDeliveryDate
const DeliveryDateLayout = "2006-01-02"

// BeforeCreate fills the primary key and default status
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	o.PrepareForCreate()
	return nil
}

// PrepareForCreate assigns an ID and default status if they are missing
func (o *Order) PrepareForCreate() {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.OrderStatus == "" {
		o.OrderStatus = OrderStatusPending
	}
	o.DeliveryAddress = strings.TrimSpace(o.DeliveryAddress)
}

// ShortID returns the first 8 characters of the order ID
func (o *Order) ShortID() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[:8]
}
