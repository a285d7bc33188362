package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentServiceAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	post := f.addPost(t, alice, "Post", "", 0)

	t.Run("add comment", func(t *testing.T) {
		view, err := f.commentSvc.Add(ctx, alice, post.ID, "  First!  ")
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.Equal(t, "First!", view.Text)
		assert.Equal(t, post.ID, view.PostID)
		require.NotNil(t, view.Author)
		assert.Equal(t, "alice", view.Author.Username)
		assert.NotEmpty(t, view.Author.ProfilePicture)
	})

	t.Run("blank text", func(t *testing.T) {
		_, err := f.commentSvc.Add(ctx, alice, post.ID, "   ")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("post is not checked", func(t *testing.T) {
		view, err := f.commentSvc.Add(ctx, alice, "no-such-post", "dangling")
		require.NoError(t, err)
		assert.Equal(t, "no-such-post", view.PostID)
	})

	t.Run("store failure", func(t *testing.T) {
		f.comments.Err = errors.New("disk full")
		defer func() { f.comments.Err = nil }()

		_, err := f.commentSvc.Add(ctx, alice, post.ID, "lost")
		assert.ErrorIs(t, err, ErrDependencyFailure)
	})
}

func TestCommentServiceDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	post := f.addPost(t, alice, "Post", "", 0)

	view, err := f.commentSvc.Add(ctx, alice, post.ID, "mine")
	require.NoError(t, err)

	// Deletion is not gated on ownership.
	require.NoError(t, f.commentSvc.Delete(ctx, bob, view.ID))

	_, err = f.comments.GetByID(ctx, view.ID)
	assert.Error(t, err)

	assert.ErrorIs(t, f.commentSvc.Delete(ctx, bob, view.ID), ErrCommentNotFound)

	t.Run("store failure on lookup", func(t *testing.T) {
		kept, err := f.commentSvc.Add(ctx, alice, post.ID, "kept")
		require.NoError(t, err)

		f.comments.Err = errors.New("disk full")
		err = f.commentSvc.Delete(ctx, alice, kept.ID)
		f.comments.Err = nil
		assert.ErrorIs(t, err, ErrDependencyFailure)

		_, err = f.comments.GetByID(ctx, kept.ID)
		assert.NoError(t, err)
	})
}
