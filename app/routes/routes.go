package routes

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"socialfeed/app/controllers"
	"socialfeed/app/logging"
	"socialfeed/app/middleware"
)

// Handlers collects everything the router dispatches to.
type Handlers struct {
	Users    *controllers.UserController
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	Auth     *middleware.Auth
	Media    http.Handler

	CORSAllowedOrigins []string
	Log                logging.Logger
}

// SetupRoutes defines the application's routes. CORS wraps the router so
// preflight requests are answered before route matching.
func SetupRoutes(h Handlers) http.Handler {
	log := h.Log
	if log == nil {
		log = logging.GetLogger("http")
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)

	// Apply global middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.ContentTypeJSON)

	protect := func(handler http.HandlerFunc) http.Handler {
		return h.Auth.RequireAuth(handler)
	}

	router.HandleFunc("/health", controllers.Health).Methods("GET")
	if h.Media != nil {
		router.Handle("/media/{name}", h.Media).Methods("GET")
	}

	// Users; fixed paths come before /users/{id}
	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", h.Users.Register).Methods("POST")
	users.HandleFunc("/login", h.Users.Login).Methods("POST")
	users.Handle("/profile", protect(h.Users.Profile)).Methods("GET")
	users.Handle("/UpdateProfile", protect(h.Users.UpdateProfile)).Methods("PUT")
	users.Handle("/profilePicture", protect(h.Users.ProfilePicture)).Methods("PUT")
	users.Handle("/update/{id}", protect(h.Users.Update)).Methods("PUT")
	users.Handle("/delete/{id}", protect(h.Users.Delete)).Methods("DELETE")
	users.Handle("", protect(h.Users.List)).Methods("GET")
	users.Handle("/{id}", protect(h.Users.Get)).Methods("GET")

	// Posts
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/allPosts", h.Posts.Index).Methods("GET")
	posts.HandleFunc("/paginationPost", h.Posts.Paginate).Methods("GET")
	posts.HandleFunc("/search", h.Posts.Search).Methods("GET")
	posts.HandleFunc("/singlePost/{id}", h.Posts.Show).Methods("GET")
	posts.HandleFunc("/user/{userId}", h.Posts.ByAuthor).Methods("GET")
	posts.Handle("/createPost", protect(h.Posts.Create)).Methods("POST")
	posts.Handle("/updatePost/{id}", protect(h.Posts.Update)).Methods("PUT")
	posts.Handle("/delete/{id}", protect(h.Posts.Delete)).Methods("DELETE")
	posts.Handle("/{id}/like", protect(h.Posts.Like)).Methods("PUT")
	posts.Handle("/{id}/unlike", protect(h.Posts.Unlike)).Methods("PUT")

	// Comments
	comments := router.PathPrefix("/comments").Subrouter()
	comments.Handle("/add/{postId}", protect(h.Comments.Add)).Methods("POST")
	comments.Handle("/delete/{id}", protect(h.Comments.Delete)).Methods("DELETE")

	return cors.Handler(cors.Options{
		AllowedOrigins:   h.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(router)
}
