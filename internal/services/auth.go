package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/amrutdhara/orderbot/internal/conversation"
	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/storage"
)

// Errors surfaced to chat users verbatim
var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrAuthUnavailable    = errors.New("authentication service unavailable")
)

// Registration validation errors
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
	ErrEmailRegistered = errors.New("email is already registered")
)

const minPasswordLength = 8

var registrationEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService verifies customer credentials against the user store
type AuthService struct {
	store storage.Store
	cost  int
}

// NewAuthService creates a new auth service
func NewAuthService(store storage.Store) *AuthService {
	return &AuthService{
		store: store,
		cost:  bcrypt.DefaultCost,
	}
}

// Authenticate checks email and password. Unknown emails and wrong passwords
// return the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*conversation.Account, error) {
	user, err := s.store.GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("❌ User lookup failed: %v", err)
		return nil, ErrAuthUnavailable
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	log.Printf("✅ User %s authenticated", user.ID)
	return &conversation.Account{ID: user.ID, Email: user.Email}, nil
}

// Register creates a customer account with a bcrypt password hash
func (s *AuthService) Register(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	email := models.NormalizeEmail(reg.Email)
	if !registrationEmailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(reg.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		CompanyName:  strings.TrimSpace(reg.CompanyName),
		ContactName:  strings.TrimSpace(reg.ContactName),
		MobileNumber: strings.TrimSpace(reg.MobileNumber),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("✅ New customer registered: %s", user.ID)
	return user, nil
}
