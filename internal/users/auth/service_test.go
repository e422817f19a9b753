// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
	"github.com/taibuivan/wanderstay/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository double.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID

	findErr   error
	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if repository.findErr != nil {
		return nil, repository.findErr
	}
	if user, ok := repository.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if repository.findErr != nil {
		return nil, repository.findErr
	}
	for _, user := range repository.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if repository.findErr != nil {
		return nil, repository.findErr
	}
	for _, user := range repository.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if repository.createErr != nil {
		return repository.createErr
	}
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := repository.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repository.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// seedUser registers an account through the real service so the stored hash
// is a genuine bcrypt digest.
func seedUser(t *testing.T, service *auth.Service, username, email, password string) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

/*
TestService_Register tests account enrollment and the duplicate-identity checks.
*/
func TestService_Register(t *testing.T) {
	repository := newFakeUserRepository()
	service := auth.NewService(repository)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{
		Username: "tai",
		Email:    "tai@wanderstay.app",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "tai", user.Username)

	// The plain text never reaches storage
	stored := repository.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "sup3r-secret", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("sup3r-secret", stored.PasswordHash))

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "someone-else",
			Email:    "tai@wanderstay.app",
			Password: "another-secret",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "CONFLICT"))
	})

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "tai",
			Email:    "other@wanderstay.app",
			Password: "another-secret",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "CONFLICT"))
	})
}

/*
TestService_Authenticate tests the flexible email-or-username login and the
indistinguishable failure modes.
*/
func TestService_Authenticate(t *testing.T) {
	repository := newFakeUserRepository()
	service := auth.NewService(repository)
	ctx := context.Background()

	seedUser(t, service, "tai", "tai@wanderstay.app", "sup3r-secret")

	t.Run("by_email", func(t *testing.T) {
		user, err := service.Authenticate(ctx, auth.LoginInput{Login: "tai@wanderstay.app", Password: "sup3r-secret"})
		require.NoError(t, err)
		assert.Equal(t, "tai", user.Username)
	})

	t.Run("by_username", func(t *testing.T) {
		user, err := service.Authenticate(ctx, auth.LoginInput{Login: "tai", Password: "sup3r-secret"})
		require.NoError(t, err)
		assert.Equal(t, "tai@wanderstay.app", user.Email)
	})

	t.Run("unknown_account", func(t *testing.T) {
		_, err := service.Authenticate(ctx, auth.LoginInput{Login: "nobody", Password: "sup3r-secret"})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Equal(t, "Invalid login credentials", ae.Message)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Authenticate(ctx, auth.LoginInput{Login: "tai", Password: "wrong"})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)

		// Identical code and message to the unknown-account case: callers
		// cannot tell which credential was bad.
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Equal(t, "Invalid login credentials", ae.Message)
	})

	t.Run("store_failure_not_masked", func(t *testing.T) {
		repository.findErr = errors.New("connection refused")
		defer func() { repository.findErr = nil }()

		_, err := service.Authenticate(ctx, auth.LoginInput{Login: "tai", Password: "sup3r-secret"})
		require.Error(t, err)
		assert.False(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})
}

/*
TestService_ChangePassword tests the verify-then-rotate password flow.
*/
func TestService_ChangePassword(t *testing.T) {
	repository := newFakeUserRepository()
	service := auth.NewService(repository)
	ctx := context.Background()

	user := seedUser(t, service, "tai", "tai@wanderstay.app", "old-password-1")

	t.Run("wrong_current_password", func(t *testing.T) {
		err := service.ChangePassword(ctx, user.ID, "not-the-password", "new-password-1")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, service.ChangePassword(ctx, user.ID, "old-password-1", "new-password-1"))

		// Old credentials stop working, new ones take over
		_, err := service.Authenticate(ctx, auth.LoginInput{Login: "tai", Password: "old-password-1"})
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

		_, err = service.Authenticate(ctx, auth.LoginInput{Login: "tai", Password: "new-password-1"})
		assert.NoError(t, err)
	})

	t.Run("unknown_user", func(t *testing.T) {
		err := service.ChangePassword(ctx, "missing-id", "whatever", "new-password-1")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})
}

/*
TestIdentity tests the account → session identity projection.
*/
func TestIdentity(t *testing.T) {
	user := &auth.User{ID: "user-1", Username: "tai", Email: "tai@wanderstay.app"}
	identity := auth.Identity(user)

	assert.Equal(t, sec.Identity{UserID: "user-1", Username: "tai"}, identity)
}
