// Package mock provides in-memory repositories for service and controller tests.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"socialfeed/app/models"
	"socialfeed/app/repositories"
)

// UserRepository is an in-memory repositories.UserRepository. Setting Err
// makes every call fail with it.
type UserRepository struct {
	users map[string]models.User
	mutex sync.RWMutex
	Err   error
}

type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
	Err   error
}

type CommentRepository struct {
	comments map[string]models.Comment
	mutex    sync.RWMutex
	Err      error
}

var (
	_ repositories.UserRepository    = (*UserRepository)(nil)
	_ repositories.PostRepository    = (*PostRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]models.Comment)}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

// UserRepository implementation
func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.users {
		if models.NormalizeEmail(existing.Email) == models.NormalizeEmail(user.Email) {
			return fmt.Errorf("%w: email %s", repositories.ErrDuplicate, user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, user := range m.users {
		if models.NormalizeEmail(user.Email) == models.NormalizeEmail(email) {
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		user := user
		users = append(users, &user)
	}
	return users, nil
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, existing := range m.users {
		if id != user.ID && models.NormalizeEmail(existing.Email) == models.NormalizeEmail(user.Email) {
			return fmt.Errorf("%w: email %s", repositories.ErrDuplicate, user.Email)
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	m.posts[post.ID] = post.Clone()
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post.Clone(), nil
}

func (m *PostRepository) Find(ctx context.Context, filter repositories.PostFilter) ([]*models.Post, error) {
	posts, err := m.matching(filter)
	if err != nil {
		return nil, err
	}
	return filter.Page(posts), nil
}

func (m *PostRepository) Count(ctx context.Context, filter repositories.PostFilter) (int, error) {
	posts, err := m.matching(filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (m *PostRepository) matching(filter repositories.PostFilter) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := []*models.Post{}
	for _, post := range m.posts {
		if filter.Match(post) {
			posts = append(posts, post.Clone())
		}
	}
	repositories.SortPosts(posts)
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post.Clone()
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	m.comments[comment.ID] = *comment
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comment := comment
			comments = append(comments, &comment)
		}
	}
	repositories.SortComments(comments)
	return comments, nil
}
