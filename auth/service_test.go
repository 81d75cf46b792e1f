package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/config"
	"github.com/RobertLib/todo-api/validation"
)

// fakeUserStore keeps users in memory; good enough to drive the service.
type fakeUserStore struct {
	nextID  int
	byEmail map[string]*User

	insertErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, byEmail: map[string]*User{}}
}

func (f *fakeUserStore) Insert(ctx context.Context, email, hashedPassword string) (*User, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	user := &User{
		ID:             f.nextID,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	f.nextID++
	f.byEmail[email] = user
	return user, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id int) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) ExistsWithEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func TestRegister(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, testAuthConfig())

	resp, err := service.Register(context.Background(), &validation.RegisterInput{
		Email:    "user@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.Positive(t, resp.User.ID)

	// The token must be bound to the new user's id.
	claims, err := ParseToken(resp.Token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// The stored password is a verifiable bcrypt hash, not the plaintext.
	stored := store.byEmail["user@example.com"]
	assert.NotEqual(t, "secret1", stored.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("secret1")))
}

func TestRegisterResponseOmitsPasswordHash(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, testAuthConfig())

	resp, err := service.Register(context.Background(), &validation.RegisterInput{
		Email:    "user@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), store.byEmail["user@example.com"].HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, testAuthConfig())

	in := &validation.RegisterInput{Email: "user@example.com", Password: "secret1"}
	first, err := service.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))

	// The first registration is unaffected.
	user, err := store.FindByID(context.Background(), first.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), &validation.RegisterInput{
		Email:    "existing@x.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := service.Login(context.Background(), &validation.LoginInput{
			Email:    "existing@x.com",
			Password: "correct-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "existing@x.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPassword := service.Login(context.Background(), &validation.LoginInput{
			Email:    "existing@x.com",
			Password: "wrong-password",
		})
		_, errUnknownEmail := service.Login(context.Background(), &validation.LoginInput{
			Email:    "nonexistent@x.com",
			Password: "any-password",
		})

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)

		appErr1, ok := apperror.FromError(errWrongPassword)
		require.True(t, ok)
		appErr2, ok := apperror.FromError(errUnknownEmail)
		require.True(t, ok)

		assert.Equal(t, "Invalid credentials", appErr1.Message)
		assert.Equal(t, appErr1.Message, appErr2.Message)
		assert.Equal(t, appErr1.StatusCode(), appErr2.StatusCode())
		assert.Equal(t, 401, appErr1.StatusCode())
	})
}

func TestRegisterMissingSecretIsConfigError(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, config.AuthConfig{JWTSecret: "", TokenTTL: time.Hour})

	_, err := service.Register(context.Background(), &validation.RegisterInput{
		Email:    "user@example.com",
		Password: "secret1",
	})
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ConfigError, appErr.Type)
	assert.Equal(t, 500, appErr.StatusCode())
}

func TestRequireAuth(t *testing.T) {
	assert.NoError(t, RequireAuth(1))
	for _, id := range []int{0, -1, -42} {
		err := RequireAuth(id)
		require.Error(t, err)
		assert.True(t, apperror.IsAuthError(err))
	}
}
