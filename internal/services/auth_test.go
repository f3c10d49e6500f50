package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amrutdhara/orderbot/internal/models"
	"github.com/amrutdhara/orderbot/internal/storage"
)

// failingStore fails every user lookup with a non-NotFound error
type failingStore struct {
	storage.Store
}

func (failingStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func newTestAuthService(store storage.Store) *AuthService {
	svc := NewAuthService(store)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := newTestAuthService(store)

	user, err := svc.Register(ctx, models.UserRegistration{
		Email:        "  Owner@Example.com ",
		Password:     "correct horse",
		CompanyName:  "Acme Traders",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, "+919876543210", user.MobileNumber)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	account, err := svc.Authenticate(ctx, "OWNER@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, account.ID)
	assert.Equal(t, "owner@example.com", account.Email)
}

func TestAuthService_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(storage.NewMemoryStore())
	_, err := svc.Register(ctx, models.UserRegistration{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "a@example.com", "password2")
	_, unknownEmail := svc.Authenticate(ctx, "b@example.com", "password1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, "Invalid login credentials", wrongPassword.Error())
}

func TestAuthService_StoreFailure(t *testing.T) {
	svc := newTestAuthService(failingStore{})

	_, err := svc.Authenticate(context.Background(), "a@example.com", "password1")

	assert.ErrorIs(t, err, ErrAuthUnavailable)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(storage.NewMemoryStore())

	_, err := svc.Register(ctx, models.UserRegistration{Email: "not-an-email", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, models.UserRegistration{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, models.UserRegistration{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, models.UserRegistration{Email: "A@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailRegistered)
}
