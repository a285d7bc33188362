package services

import (
	"context"
	"testing"
	"time"

	"socialfeed/app/blobs"
	"socialfeed/app/models"
	"socialfeed/app/repositories"
	"socialfeed/app/repositories/mock"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var postFilterAll = repositories.PostFilter{}

var pngPayload = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type fixture struct {
	users    *mock.UserRepository
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	blobs    *blobs.MemoryStore

	credentials *CredentialService
	aggregator  *Aggregator
	userSvc     *UserService
	postSvc     *PostService
	commentSvc  *CommentService
	querySvc    *QueryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:       mock.NewUserRepository(),
		posts:       mock.NewPostRepository(),
		comments:    mock.NewCommentRepository(),
		blobs:       blobs.NewMemoryStore("http://media.test"),
		credentials: NewCredentialService([]byte("test-secret"), time.Hour).WithCost(bcrypt.MinCost),
	}
	f.aggregator = NewAggregator(f.users, f.comments)
	f.userSvc = NewUserService(f.users, f.credentials, f.blobs, "")
	f.postSvc = NewPostService(f.posts, f.users, f.blobs, f.aggregator)
	f.commentSvc = NewCommentService(f.comments, f.aggregator)
	f.querySvc = NewQueryService(f.posts, f.aggregator)
	return f
}

// addUser stores a user directly and returns its identity.
func (f *fixture) addUser(t *testing.T, name string) Identity {
	t.Helper()

	user := &models.User{Username: name, Email: name + "@example.com"}
	user.BeforeCreate()
	require.NoError(t, f.users.Create(context.Background(), user))
	return Identity{UserID: user.ID}
}

// addPost stores a post directly with the given age.
func (f *fixture) addPost(t *testing.T, author Identity, title, description string, age time.Duration) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:       title,
		Description: description,
		AuthorID:    author.UserID,
		CreatedAt:   time.Now().Add(-age),
	}
	post.BeforeCreate()
	require.NoError(t, f.posts.Create(context.Background(), post))
	return post
}
