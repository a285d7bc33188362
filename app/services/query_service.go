package services

import (
	"context"
	"math"
	"strings"

	"socialfeed/app/models"
	"socialfeed/app/repositories"
)

// Feed paging defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// QueryService serves the read side of the feed. Every post it returns is
// author-populated and has its comments attached.
type QueryService struct {
	posts      repositories.PostRepository
	aggregator *Aggregator
}

// NewQueryService creates a new QueryService
func NewQueryService(posts repositories.PostRepository, aggregator *Aggregator) *QueryService {
	return &QueryService{posts: posts, aggregator: aggregator}
}

// ListAll returns every post, newest first.
func (s *QueryService) ListAll(ctx context.Context) ([]*models.PostView, error) {
	return s.find(ctx, repositories.PostFilter{})
}

// Paginate returns one page of the feed. Values below one fall back to the
// defaults.
func (s *QueryService) Paginate(ctx context.Context, page, limit int) (*models.PostPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total, err := s.posts.Count(ctx, repositories.PostFilter{})
	if err != nil {
		return nil, dependencyFailure("count posts", err)
	}

	result := &models.PostPage{
		Posts:       []*models.PostView{},
		CurrentPage: page,
		TotalPages:  total / limit,
		TotalPosts:  total,
	}
	if total%limit != 0 {
		result.TotalPages++
	}

	// Past the end; (page-1)*limit would overflow.
	if page-1 > math.MaxInt/limit {
		return result, nil
	}

	result.Posts, err = s.find(ctx, repositories.PostFilter{Skip: (page - 1) * limit, Limit: limit})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Search matches query against title and description, ignoring case.
func (s *QueryService) Search(ctx context.Context, query string) ([]*models.PostView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.find(ctx, repositories.PostFilter{Query: query})
}

// ByAuthor returns the posts written by userID.
func (s *QueryService) ByAuthor(ctx context.Context, userID string) ([]*models.PostView, error) {
	return s.find(ctx, repositories.PostFilter{AuthorID: userID})
}

// GetOne returns a single post.
func (s *QueryService) GetOne(ctx context.Context, postID string) (*models.PostView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError("get post", err, ErrPostNotFound)
	}
	return s.aggregator.Attach(ctx, post)
}

func (s *QueryService) find(ctx context.Context, filter repositories.PostFilter) ([]*models.PostView, error) {
	posts, err := s.posts.Find(ctx, filter)
	if err != nil {
		return nil, dependencyFailure("find posts", err)
	}
	return s.aggregator.AttachAll(ctx, posts)
}
