package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/store"
	"github.com/jonathan/resume-coach/internal/types"
)

// fakeUserStore is an in-memory UserStore for handler and service tests.
type fakeUserStore struct {
	users map[uuid.UUID]*store.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*store.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	f.users[id] = &store.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return id, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID uuid.UUID) (*store.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func setupUserService(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	fake := newFakeUserStore()
	return NewUserService(fake, passwordConfig), fake
}

func TestUserService_Register(t *testing.T) {
	service, fake := setupUserService(t)

	req := &types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	}

	user, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)

	// Stored hash must not be the plaintext password
	stored := fake.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, req.Password, stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	service, _ := setupUserService(t)
	ctx := context.Background()

	req := &types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	}

	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	require.Error(t, err)
	var dup *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &dup)
}

func TestUserService_Login(t *testing.T) {
	service, _ := setupUserService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	user, err := service.Login(ctx, &types.LoginRequest{
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	service, _ := setupUserService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &types.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	user, err := service.Login(ctx, &types.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Nil(t, user)

	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	service, _ := setupUserService(t)

	user, err := service.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	require.Error(t, err)
	assert.Nil(t, user)

	// Unknown email and wrong password must be indistinguishable
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestConvertStoreUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		now := time.Now()
		u := &store.User{
			ID:           uuid.New(),
			Name:         "John Doe",
			Email:        "john@example.com",
			PasswordHash: "hashed-password",
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		converted := convertStoreUser(u)
		require.NotNil(t, converted)
		assert.Equal(t, u.ID, converted.ID)
		assert.Equal(t, u.Name, converted.Name)
		assert.Equal(t, u.Email, converted.Email)
		assert.Equal(t, u.CreatedAt, converted.CreatedAt)
		assert.Equal(t, u.UpdatedAt, converted.UpdatedAt)
		// Password hash should not be in types.User (it doesn't have that field)
	})

	t.Run("nil user", func(t *testing.T) {
		assert.Nil(t, convertStoreUser(nil))
	})
}
