package repositories

import (
	"context"
	"testing"
	"time"

	"socialfeed/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).Comments()

	t.Run("create and get comment", func(t *testing.T) {
		comment := &models.Comment{
			PostID:    "p1",
			AuthorID:  "u1",
			Text:      "Test Comment",
			CreatedAt: time.Now(),
		}

		require.NoError(t, repo.Create(ctx, comment))
		assert.NotEmpty(t, comment.ID)

		retrieved, err := repo.GetByID(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, comment.Text, retrieved.Text)
		assert.Equal(t, comment.PostID, retrieved.PostID)
	})

	t.Run("list comments by post newest first", func(t *testing.T) {
		base := time.Now()
		// Inserted out of order on purpose.
		offsets := []time.Duration{2 * time.Minute, 0, 5 * time.Minute, time.Minute}
		for _, offset := range offsets {
			comment := &models.Comment{
				PostID:    "p2",
				AuthorID:  "u1",
				Text:      "Comment",
				CreatedAt: base.Add(offset),
			}
			require.NoError(t, repo.Create(ctx, comment))
		}
		require.NoError(t, repo.Create(ctx, &models.Comment{PostID: "p3", AuthorID: "u1", Text: "other", CreatedAt: base}))

		comments, err := repo.ListByPost(ctx, "p2")
		require.NoError(t, err)
		require.Len(t, comments, 4)
		for i := 1; i < len(comments); i++ {
			assert.False(t, comments[i].CreatedAt.After(comments[i-1].CreatedAt))
		}
		for _, comment := range comments {
			assert.Equal(t, "p2", comment.PostID)
		}
	})

	t.Run("list ignores posts sharing the key prefix", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Comment{PostID: "abc", AuthorID: "u1", Text: "real", CreatedAt: time.Now()}))
		require.NoError(t, repo.Create(ctx, &models.Comment{PostID: "abc:evil", AuthorID: "u2", Text: "injected", CreatedAt: time.Now()}))

		comments, err := repo.ListByPost(ctx, "abc")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "real", comments[0].Text)

		comments, err = repo.ListByPost(ctx, "abc:evil")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "injected", comments[0].Text)
	})

	t.Run("list comments of unknown post", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("delete comment", func(t *testing.T) {
		comment := &models.Comment{PostID: "p4", AuthorID: "u1", Text: "bye", CreatedAt: time.Now()}
		require.NoError(t, repo.Create(ctx, comment))

		require.NoError(t, repo.Delete(ctx, comment.ID))

		_, err := repo.GetByID(ctx, comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		comments, err := repo.ListByPost(ctx, "p4")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("delete missing comment", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	})
}
