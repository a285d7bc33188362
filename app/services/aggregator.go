package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"socialfeed/app/logging"
	"socialfeed/app/models"
	"socialfeed/app/repositories"
)

// attachLimit bounds concurrent Attach calls per AttachAll.
const attachLimit = 8

// Aggregator builds read views: a post with its author profile and its
// comments, newest first, each with its own author profile.
type Aggregator struct {
	users    repositories.UserRepository
	comments repositories.CommentRepository
	log      logging.Logger
}

func NewAggregator(users repositories.UserRepository, comments repositories.CommentRepository) *Aggregator {
	return &Aggregator{
		users:    users,
		comments: comments,
		log:      logging.GetLogger("services.aggregator"),
	}
}

// Attach builds the view for one post. Calls share no state, so any number
// may run at once.
func (a *Aggregator) Attach(ctx context.Context, post *models.Post) (*models.PostView, error) {
	profiles := profileCache{}

	author, err := a.profile(ctx, profiles, post.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := a.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, dependencyFailure("list comments", err)
	}
	repositories.SortComments(comments)

	views := make([]*models.CommentView, 0, len(comments))
	for _, comment := range comments {
		commenter, err := a.profile(ctx, profiles, comment.AuthorID)
		if err != nil {
			return nil, err
		}
		views = append(views, &models.CommentView{Comment: comment, Author: commenter})
	}

	return &models.PostView{Post: post, Author: author, Comments: views}, nil
}

// AttachAll attaches every post concurrently, keeping the input order.
func (a *Aggregator) AttachAll(ctx context.Context, posts []*models.Post) ([]*models.PostView, error) {
	views := make([]*models.PostView, len(posts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(attachLimit)
	for i, post := range posts {
		g.Go(func() error {
			view, err := a.Attach(ctx, post)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// Author resolves the public profile of one post's author.
func (a *Aggregator) Author(ctx context.Context, post *models.Post) (*models.AuthoredPost, error) {
	author, err := a.profile(ctx, profileCache{}, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &models.AuthoredPost{Post: post, Author: author}, nil
}

// profileCache memoizes lookups within a single Attach call.
type profileCache map[string]*models.PublicProfile

// profile returns nil for users that no longer exist.
func (a *Aggregator) profile(ctx context.Context, cache profileCache, userID string) (*models.PublicProfile, error) {
	if profile, ok := cache[userID]; ok {
		return profile, nil
	}

	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		a.log.DebugContext(ctx, "dangling author reference", "user_id", userID)
		cache[userID] = nil
		return nil, nil
	}
	if err != nil {
		return nil, dependencyFailure("resolve author", err)
	}

	cache[userID] = user.Profile()
	return cache[userID], nil
}
