package services

import (
	"context"
	"errors"
	"strings"

	"socialfeed/app/blobs"
	"socialfeed/app/logging"
	"socialfeed/app/models"
	"socialfeed/app/repositories"
)

// Upload is an image payload taken from a request.
type Upload struct {
	Data     []byte
	Filename string
}

// PostInput carries the fields of a new post.
type PostInput struct {
	Title       string
	Description string
	Image       *Upload
}

// PostService enforces the post lifecycle: creation, owner-only updates and
// deletes, and like/unlike.
type PostService struct {
	posts      repositories.PostRepository
	users      repositories.UserRepository
	blobs      blobs.Store
	aggregator *Aggregator
	log        logging.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	blobStore blobs.Store,
	aggregator *Aggregator,
) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		blobs:      blobStore,
		aggregator: aggregator,
		log:        logging.GetLogger("services.posts"),
	}
}

// Create stores a new post owned by identity. The image, if any, is
// uploaded first; no post is written when the upload fails.
func (s *PostService) Create(ctx context.Context, identity Identity, in PostInput) (post *models.Post, err error) {
	defer func() {
		if err != nil {
			s.log.WarnContext(ctx, "create post failed", "user_id", identity.UserID, "error", err)
		} else {
			s.log.InfoContext(ctx, "post created", "user_id", identity.UserID, "post_id", post.ID)
		}
	}()

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" && description == "" && in.Image == nil {
		return nil, ErrEmptyPost
	}

	if _, err := s.users.GetByID(ctx, identity.UserID); err != nil {
		return nil, storeError("resolve author", err, ErrUserNotFound)
	}

	post = &models.Post{
		Title:       title,
		Description: description,
		AuthorID:    identity.UserID,
	}
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if in.Image != nil {
		url, err := s.upload(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = url
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, storeError("create post", err, ErrPostNotFound)
	}
	return post, nil
}

// Update applies patch and, when given, a new image. Only the author may
// update; a failed upload leaves the stored post unchanged.
func (s *PostService) Update(
	ctx context.Context,
	identity Identity,
	postID string,
	patch *models.PostPatch,
	image *Upload,
) (result *models.AuthoredPost, err error) {
	defer s.logMutation(ctx, "update", identity, postID, &err)

	post, err := s.ownedPost(ctx, identity, postID)
	if err != nil {
		return nil, err
	}

	if patch != nil {
		if err := patch.Validate(); err != nil {
			return nil, invalidArgument(err)
		}
		patch.Apply(post)
	}

	if err := post.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		post.Image = url
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, storeError("update post", err, ErrPostNotFound)
	}
	return s.aggregator.Author(ctx, post)
}

// Delete removes a post owned by identity. Comments are left in place.
func (s *PostService) Delete(ctx context.Context, identity Identity, postID string) (err error) {
	defer s.logMutation(ctx, "delete", identity, postID, &err)

	if _, err := s.ownedPost(ctx, identity, postID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return storeError("delete post", err, ErrPostNotFound)
	}
	return nil
}

// Like adds identity to the post's likes. A second like is rejected with
// ErrAlreadyLiked.
func (s *PostService) Like(ctx context.Context, identity Identity, postID string) (result *models.AuthoredPost, err error) {
	defer s.logMutation(ctx, "like", identity, postID, &err)

	return s.toggleLike(ctx, postID, func(post *models.Post) error {
		if !post.Like(identity.UserID) {
			return ErrAlreadyLiked
		}
		return nil
	})
}

// Unlike removes identity from the post's likes, failing with ErrNotLiked
// when it was not there.
func (s *PostService) Unlike(ctx context.Context, identity Identity, postID string) (result *models.AuthoredPost, err error) {
	defer s.logMutation(ctx, "unlike", identity, postID, &err)

	return s.toggleLike(ctx, postID, func(post *models.Post) error {
		if !post.Unlike(identity.UserID) {
			return ErrNotLiked
		}
		return nil
	})
}

// toggleLike is a plain read-modify-write; concurrent likes on one post
// race and the last write wins.
func (s *PostService) toggleLike(
	ctx context.Context,
	postID string,
	change func(*models.Post) error,
) (*models.AuthoredPost, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError("get post", err, ErrPostNotFound)
	}

	if err := change(post); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, storeError("update likes", err, ErrPostNotFound)
	}
	return s.aggregator.Author(ctx, post)
}

func (s *PostService) ownedPost(ctx context.Context, identity Identity, postID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError("get post", err, ErrPostNotFound)
	}
	if !post.IsOwnedBy(identity.UserID) {
		return nil, ErrNotPostOwner
	}
	return post, nil
}

func (s *PostService) upload(ctx context.Context, image *Upload) (string, error) {
	url, err := s.blobs.Put(ctx, image.Data, image.Filename)
	switch {
	case errors.Is(err, blobs.ErrNotImage), errors.Is(err, blobs.ErrEmpty):
		return "", invalidArgument(err)
	case err != nil:
		return "", dependencyFailure("upload image", err)
	}
	return url, nil
}

func (s *PostService) logMutation(ctx context.Context, op string, identity Identity, postID string, err *error) {
	log := s.log.With(logging.Group("post", "op", op, "id", postID, "user_id", identity.UserID))
	if *err != nil {
		log.WarnContext(ctx, "post mutation failed", "error", *err)
	} else {
		log.InfoContext(ctx, "post mutated")
	}
}
