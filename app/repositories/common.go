package repositories

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"socialfeed/app/models"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix      = "user:"
	UserEmailKeyPrefix = "user_email:"
	PostKeyPrefix      = "post:"
	CommentKeyPrefix   = "comment:"
	CommentIDKeyPrefix = "comment_id:"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

func userKey(id string) []byte {
	return []byte(UserKeyPrefix + id)
}

func userEmailKey(email string) []byte {
	return []byte(UserEmailKeyPrefix + models.NormalizeEmail(email))
}

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

// commentKey embeds the post id so comments of one post share a prefix.
func commentKey(postID, id string) []byte {
	return []byte(CommentKeyPrefix + postID + ":" + id)
}

func commentIDKey(id string) []byte {
	return []byte(CommentIDKeyPrefix + id)
}

// newID returns a fresh entity identifier.
func newID() string {
	return uuid.NewString()
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// storedUser keeps the credential hash, which models.User never serializes.
type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func toStoredUser(u *models.User) storedUser {
	return storedUser{User: *u, PasswordHash: u.Password}
}

func (s storedUser) user() *models.User {
	u := s.User
	u.Password = s.PasswordHash
	return &u
}

// newestFirst orders by creation time descending, then by id for stability.
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := createdAt(b).Compare(createdAt(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(b), id(a))
	})
}

func sortPosts(posts []*models.Post) {
	newestFirst(posts,
		func(p *models.Post) time.Time { return p.CreatedAt },
		func(p *models.Post) string { return p.ID })
}

func sortComments(comments []*models.Comment) {
	newestFirst(comments,
		func(c *models.Comment) time.Time { return c.CreatedAt },
		func(c *models.Comment) string { return c.ID })
}

// Match reports whether post satisfies the filter's predicates; paging is
// applied separately.
func (f PostFilter) Match(post *models.Post) bool {
	if f.AuthorID != "" && post.AuthorID != f.AuthorID {
		return false
	}
	if f.Query != "" && !post.Matches(f.Query) {
		return false
	}
	return true
}

// Page applies skip and limit to an already sorted slice.
func (f PostFilter) Page(posts []*models.Post) []*models.Post {
	if f.Skip > 0 {
		if f.Skip >= len(posts) {
			return []*models.Post{}
		}
		posts = posts[f.Skip:]
	}
	if f.Limit > 0 && f.Limit < len(posts) {
		posts = posts[:f.Limit]
	}
	return posts
}

// SortPosts orders posts newest first.
func SortPosts(posts []*models.Post) { sortPosts(posts) }

// SortComments orders comments newest first.
func SortComments(comments []*models.Comment) { sortComments(comments) }

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context: %w", err)
	}
	return nil
}
