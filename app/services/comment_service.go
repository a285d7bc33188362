package services

import (
	"context"
	"strings"

	"socialfeed/app/logging"
	"socialfeed/app/models"
	"socialfeed/app/repositories"
)

// CommentService handles the comment lifecycle.
type CommentService struct {
	comments   repositories.CommentRepository
	aggregator *Aggregator
	log        logging.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, aggregator *Aggregator) *CommentService {
	return &CommentService{
		comments:   comments,
		aggregator: aggregator,
		log:        logging.GetLogger("services.comments"),
	}
}

// Add creates a comment by identity on postID. The post is not looked up,
// so a comment may reference a post that is already gone.
func (s *CommentService) Add(ctx context.Context, identity Identity, postID, text string) (view *models.CommentView, err error) {
	defer func() {
		log := s.log.With(logging.Group("comment", "post_id", postID, "user_id", identity.UserID))
		if err != nil {
			log.WarnContext(ctx, "add comment failed", "error", err)
		} else {
			log.InfoContext(ctx, "comment added", "comment_id", view.ID)
		}
	}()

	comment := &models.Comment{
		Text:     strings.TrimSpace(text),
		AuthorID: identity.UserID,
		PostID:   postID,
	}
	comment.BeforeCreate()

	if err := comment.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, storeError("create comment", err, ErrCommentNotFound)
	}

	author, err := s.aggregator.profile(ctx, profileCache{}, identity.UserID)
	if err != nil {
		return nil, err
	}
	return &models.CommentView{Comment: comment, Author: author}, nil
}

// Delete removes a comment. Any authenticated caller may delete any comment.
func (s *CommentService) Delete(ctx context.Context, identity Identity, commentID string) (err error) {
	var postID string
	defer func() {
		log := s.log.With(logging.Group("comment", "id", commentID, "user_id", identity.UserID))
		if err != nil {
			log.WarnContext(ctx, "delete comment failed", "error", err)
		} else {
			log.InfoContext(ctx, "comment deleted", "post_id", postID)
		}
	}()

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return storeError("get comment", err, ErrCommentNotFound)
	}
	postID = comment.PostID

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return storeError("delete comment", err, ErrCommentNotFound)
	}
	return nil
}
