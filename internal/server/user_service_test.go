package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/scholarship-tracker/internal/config"
	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/types"
)

// fakeDBClient is an in-memory DBClient for unit tests.
type fakeDBClient struct {
	users map[uuid.UUID]*db.User
}

func newFakeDBClient() *fakeDBClient {
	return &fakeDBClient{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeDBClient) CreateUser(_ context.Context, name, email, phone string) (uuid.UUID, error) {
	id := uuid.New()
	var phonePtr *string
	if phone != "" {
		phonePtr = &phone
	}
	now := time.Now()
	f.users[id] = &db.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Phone:     phonePtr,
		Role:      db.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeDBClient) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeDBClient) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDBClient) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeDBClient) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
		u.PasswordSet = true
	}
	return nil
}

func newTestUserService() (*UserService, *fakeDBClient) {
	client := newFakeDBClient()
	return NewUserService(client, &config.PasswordConfig{BcryptCost: 10}), client
}

func TestUserService_Register(t *testing.T) {
	svc, client := newTestUserService()

	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, db.RoleStudent, user.Role)

	stored := client.users[user.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.PasswordSet)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()

	req := &types.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	var dup *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "ada@example.com", dup.Email)
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newTestUserService()

	registered, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_Login_Failures(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: "password123"},
		{name: "wrong password", email: "ada@example.com", password: "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &types.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			var invalid *ErrInvalidCredentials
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), user.ID, "password123", "newpassword456")
	require.NoError(t, err)

	// old password no longer works
	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ada@example.com",
		Password: "newpassword456",
	})
	require.NoError(t, err)
}

func TestUserService_UpdatePassword_WrongCurrent(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), user.ID, "wrong-password", "newpassword456")
	var mismatch *ErrPasswordMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	svc, _ := newTestUserService()

	err := svc.UpdatePassword(context.Background(), uuid.New(), "password123", "newpassword456")
	var notFound *ErrUserNotFound
	require.ErrorAs(t, err, &notFound)
}
