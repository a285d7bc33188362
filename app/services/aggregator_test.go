package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"socialfeed/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorAttach(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	post := f.addPost(t, alice, "Post", "", 0)

	base := time.Now()
	offsets := []time.Duration{3 * time.Minute, -time.Minute, 10 * time.Minute, 0, time.Minute}
	for i, offset := range offsets {
		author := alice
		if i%2 == 1 {
			author = bob
		}
		comment := &models.Comment{
			Text:      fmt.Sprintf("comment %d", i),
			AuthorID:  author.UserID,
			PostID:    post.ID,
			CreatedAt: base.Add(offset),
		}
		require.NoError(t, f.comments.Create(ctx, comment))
	}
	require.NoError(t, f.comments.Create(ctx, &models.Comment{Text: "elsewhere", AuthorID: bob.UserID, PostID: "other", CreatedAt: base}))

	view, err := f.aggregator.Attach(ctx, post)
	require.NoError(t, err)

	assert.Equal(t, "alice", view.Author.Username)
	require.Len(t, view.Comments, len(offsets))
	for i := 1; i < len(view.Comments); i++ {
		assert.False(t, view.Comments[i].CreatedAt.After(view.Comments[i-1].CreatedAt),
			"comment %d is newer than comment %d", i, i-1)
	}
	assert.Equal(t, "comment 2", view.Comments[0].Text)
	for _, comment := range view.Comments {
		require.NotNil(t, comment.Author)
		assert.Equal(t, comment.AuthorID, comment.Author.ID)
	}
}

func TestAggregatorDanglingAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	post := f.addPost(t, Identity{UserID: "deleted-user"}, "Orphan", "", 0)

	view, err := f.aggregator.Attach(ctx, post)
	require.NoError(t, err)
	assert.Nil(t, view.Author)
	assert.Empty(t, view.Comments)
}

func TestAggregatorAttachAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser(t, "alice")

	var posts []*models.Post
	for i := 0; i < 20; i++ {
		post := f.addPost(t, alice, fmt.Sprintf("post %d", i), "", time.Duration(i)*time.Minute)
		_, err := f.commentSvc.Add(ctx, alice, post.ID, "hi")
		require.NoError(t, err)
		posts = append(posts, post)
	}

	views, err := f.aggregator.AttachAll(ctx, posts)
	require.NoError(t, err)
	require.Len(t, views, len(posts))
	for i, view := range views {
		assert.Equal(t, posts[i].ID, view.ID)
		assert.Len(t, view.Comments, 1)
	}

	f.comments.Err = errors.New("disk full")
	_, err = f.aggregator.AttachAll(ctx, posts)
	assert.ErrorIs(t, err, ErrDependencyFailure)
}
