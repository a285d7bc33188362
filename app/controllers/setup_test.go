package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialfeed/app/blobs"
	"socialfeed/app/middleware"
	"socialfeed/app/models"
	"socialfeed/app/repositories/mock"
	"socialfeed/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pngPayload = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type testApp struct {
	router   *mux.Router
	users    *mock.UserRepository
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	blobs    *blobs.MemoryStore
	userSvc  *services.UserService
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		users:    mock.NewUserRepository(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
		blobs:    blobs.NewMemoryStore("http://media.test"),
	}

	credentials := services.NewCredentialService([]byte("secret"), time.Hour).WithCost(bcrypt.MinCost)
	aggregator := services.NewAggregator(app.users, app.comments)
	app.userSvc = services.NewUserService(app.users, credentials, app.blobs, "")
	postSvc := services.NewPostService(app.posts, app.users, app.blobs, aggregator)
	commentSvc := services.NewCommentService(app.comments, aggregator)
	querySvc := services.NewQueryService(app.posts, aggregator)

	uc := NewUserController(app.userSvc, 0)
	pc := NewPostController(postSvc, querySvc, 0)
	cc := NewCommentController(commentSvc)

	// Identity is injected by the tests, so no auth middleware here.
	r := mux.NewRouter()
	r.HandleFunc("/users/register", uc.Register).Methods("POST")
	r.HandleFunc("/users/login", uc.Login).Methods("POST")
	r.HandleFunc("/users/profile", uc.Profile).Methods("GET")
	r.HandleFunc("/users/UpdateProfile", uc.UpdateProfile).Methods("PUT")
	r.HandleFunc("/users/profilePicture", uc.ProfilePicture).Methods("PUT")
	r.HandleFunc("/users/update/{id}", uc.Update).Methods("PUT")
	r.HandleFunc("/users/delete/{id}", uc.Delete).Methods("DELETE")
	r.HandleFunc("/users", uc.List).Methods("GET")
	r.HandleFunc("/users/{id}", uc.Get).Methods("GET")

	r.HandleFunc("/posts/allPosts", pc.Index).Methods("GET")
	r.HandleFunc("/posts/paginationPost", pc.Paginate).Methods("GET")
	r.HandleFunc("/posts/search", pc.Search).Methods("GET")
	r.HandleFunc("/posts/singlePost/{id}", pc.Show).Methods("GET")
	r.HandleFunc("/posts/user/{userId}", pc.ByAuthor).Methods("GET")
	r.HandleFunc("/posts/createPost", pc.Create).Methods("POST")
	r.HandleFunc("/posts/updatePost/{id}", pc.Update).Methods("PUT")
	r.HandleFunc("/posts/delete/{id}", pc.Delete).Methods("DELETE")
	r.HandleFunc("/posts/{id}/like", pc.Like).Methods("PUT")
	r.HandleFunc("/posts/{id}/unlike", pc.Unlike).Methods("PUT")

	r.HandleFunc("/comments/add/{postId}", cc.Add).Methods("POST")
	r.HandleFunc("/comments/delete/{id}", cc.Delete).Methods("DELETE")

	app.router = r
	return app
}

// addUser registers a user through the service and returns its identity.
func (app *testApp) addUser(t *testing.T, name string) services.Identity {
	t.Helper()

	result, err := app.userSvc.Register(context.Background(), &models.Registration{
		Username: name,
		Email:    name + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return services.Identity{UserID: result.User.ID}
}

func (app *testApp) addPost(t *testing.T, author services.Identity, title string) *models.Post {
	t.Helper()

	post := &models.Post{Title: title, AuthorID: author.UserID}
	post.BeforeCreate()
	require.NoError(t, app.posts.Create(context.Background(), post))
	return post
}

// do serves a request, acting as identity when it is non-empty.
func (app *testApp) do(t *testing.T, identity services.Identity, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	if identity.UserID != "" {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile(imageField, "upload.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
