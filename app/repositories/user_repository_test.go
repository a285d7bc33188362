package repositories

import (
	"bytes"
	"context"
	"testing"
	"time"

	"socialfeed/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(name string) *models.User {
	return &models.User{
		Username:  name,
		Email:     name + "@example.com",
		Password:  "hash-" + name,
		CreatedAt: time.Now(),
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).Users()

	alice := newTestUser("alice")
	bob := newTestUser("bob")

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, alice))
		require.NoError(t, repo.Create(ctx, bob))
		assert.NotEmpty(t, alice.ID)

		got, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "hash-alice", got.Password)

		byEmail, err := repo.GetByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := newTestUser("alice")
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("list", func(t *testing.T) {
		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("update moves email index", func(t *testing.T) {
		alice.Email = "alice2@example.com"
		require.NoError(t, repo.Update(ctx, alice))

		_, err := repo.GetByEmail(ctx, "alice@example.com")
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := repo.GetByEmail(ctx, "alice2@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})

	t.Run("update to taken email", func(t *testing.T) {
		alice.Email = bob.Email
		err := repo.Update(ctx, alice)
		assert.ErrorIs(t, err, ErrDuplicate)
		alice.Email = "alice2@example.com"
	})

	t.Run("delete frees email", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, bob.ID))

		_, err := repo.GetByID(ctx, bob.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, repo.Create(ctx, newTestUser("bob")))
	})

	t.Run("delete missing", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	})
}

func TestStoreBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	source := setupTestStore(t)
	post := &models.Post{Title: "kept", AuthorID: "u1", CreatedAt: time.Now()}
	require.NoError(t, source.Posts().Create(ctx, post))

	var buf bytes.Buffer
	_, err := source.Backup(&buf)
	require.NoError(t, err)

	target := setupTestStore(t)
	require.NoError(t, target.Restore(&buf))

	got, err := target.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}
