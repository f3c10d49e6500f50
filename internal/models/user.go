package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a customer account the bot authenticates against
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	MobileNumber string `json:"mobile_number"` // E.164, used for WhatsApp order updates

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRegistration is the request body for creating a customer account
type UserRegistration struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	MobileNumber string `json:"mobile_number"`
}

// BeforeCreate hook to generate the ID and normalize data
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.PrepareForCreate()
	return nil
}

// PrepareForCreate assigns an ID and normalizes email and phone
func (u *User) PrepareForCreate() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)

	// Normalize phone number (ensure it starts with +91 if not already)
	if u.MobileNumber != "" && !strings.HasPrefix(u.MobileNumber, "+") {
		u.MobileNumber = "+91" + strings.TrimPrefix(u.MobileNumber, "91")
	}
	if u.ContactName == "" {
		u.ContactName = strings.Split(u.Email, "@")[0]
	}
	if u.CompanyName == "" {
		u.CompanyName = "Unknown Company"
	}
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
