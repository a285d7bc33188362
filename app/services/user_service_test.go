package services

import (
	"context"
	"errors"
	"testing"

	"socialfeed/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, f *fixture, name string) *AuthResult {
	t.Helper()

	result, err := f.userSvc.Register(context.Background(), &models.Registration{
		Username: name,
		Email:    name + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return result
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("register", func(t *testing.T) {
		result := register(t, f, "alice")
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "alice@example.com", result.User.Email)
		assert.Equal(t, models.DefaultProfilePicture, result.User.ProfilePicture)
		assert.NotEqual(t, "password123", result.User.Password)

		userID, err := f.credentials.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, userID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.userSvc.Register(ctx, &models.Registration{
			Username: "other",
			Email:    " ALICE@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	tests := []struct {
		name string
		reg  models.Registration
	}{
		{"missing username", models.Registration{Email: "x@example.com", Password: "password123"}},
		{"bad email", models.Registration{Username: "x", Email: "not-an-email", Password: "password123"}},
		{"short password", models.Registration{Username: "x", Email: "x@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.userSvc.Register(ctx, &tt.reg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestUserServiceLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered := register(t, f, "alice")

	result, err := f.userSvc.Login(ctx, "Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	_, err = f.userSvc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.userSvc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := Identity{UserID: register(t, f, "alice").User.ID}
	register(t, f, "bob")

	t.Run("profile", func(t *testing.T) {
		user, err := f.userSvc.Profile(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("update profile allow-list", func(t *testing.T) {
		user, err := f.userSvc.UpdateProfile(ctx, alice, &models.ProfilePatch{Bio: "hello", Username: "alicia"})
		require.NoError(t, err)
		assert.Equal(t, "alicia", user.Username)
		assert.Equal(t, "hello", user.Bio)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := f.userSvc.UpdateProfile(ctx, alice, &models.ProfilePatch{Email: "bob@example.com"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("email malformed", func(t *testing.T) {
		_, err := f.userSvc.UpdateProfile(ctx, alice, &models.ProfilePatch{Email: "nope"})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("profile picture", func(t *testing.T) {
		user, err := f.userSvc.SetProfilePicture(ctx, alice, &Upload{Data: pngPayload, Filename: "me.png"})
		require.NoError(t, err)
		assert.Contains(t, user.ProfilePicture, "http://media.test/")

		_, err = f.userSvc.SetProfilePicture(ctx, alice, nil)
		assert.ErrorIs(t, err, ErrImageRequired)

		f.blobs.Err = errors.New("bucket unavailable")
		defer func() { f.blobs.Err = nil }()
		_, err = f.userSvc.SetProfilePicture(ctx, alice, &Upload{Data: pngPayload})
		assert.ErrorIs(t, err, ErrDependencyFailure)
	})

	t.Run("list and get", func(t *testing.T) {
		users, err := f.userSvc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		_, err = f.userSvc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserServiceAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := Identity{UserID: register(t, f, "alice").User.ID}
	bob := Identity{UserID: register(t, f, "bob").User.ID}

	_, err := f.userSvc.UpdateAccount(ctx, bob, alice.UserID, models.AccountPatch{Username: "mallory"})
	assert.ErrorIs(t, err, ErrForbidden)

	user, err := f.userSvc.UpdateAccount(ctx, alice, alice.UserID, models.AccountPatch{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)

	assert.ErrorIs(t, f.userSvc.DeleteAccount(ctx, bob, alice.UserID), ErrForbidden)
	require.NoError(t, f.userSvc.DeleteAccount(ctx, alice, alice.UserID))
	assert.ErrorIs(t, f.userSvc.DeleteAccount(ctx, alice, alice.UserID), ErrUserNotFound)

	_, err = f.userSvc.Profile(ctx, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}
