package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/madik/projectdesk/internal/auth"
	"github.com/madik/projectdesk/internal/model"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, username, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[username] = user
	return user, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newTestAuthService() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewAuthService(store, issuer), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Username: "admin", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	token, err := svc.Login(ctx, Credentials{Username: "admin", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := auth.NewParser("test-secret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "admin", principal.Username)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "admin", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, Credentials{Username: "admin", Password: "another1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "  ", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, Credentials{Username: "admin", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "admin", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, Credentials{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, Credentials{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
