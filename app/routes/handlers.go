package routes

import (
	"socialfeed/app/blobs"
	"socialfeed/app/controllers"
	"socialfeed/app/middleware"
	"socialfeed/app/repositories"
	"socialfeed/app/services"
)

// MediaStore stores uploads and reads them back for /media.
type MediaStore interface {
	blobs.Store
	blobs.Fetcher
}

// Dependencies are the stores and settings the HTTP surface is built on.
type Dependencies struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Media    MediaStore

	Credentials           *services.CredentialService
	DefaultProfilePicture string
	MaxUploadBytes        int64
	CORSAllowedOrigins    []string
}

// NewHandlers wires services and controllers on top of d.
func NewHandlers(d Dependencies) Handlers {
	aggregator := services.NewAggregator(d.Users, d.Comments)
	userService := services.NewUserService(d.Users, d.Credentials, d.Media, d.DefaultProfilePicture)
	postService := services.NewPostService(d.Posts, d.Users, d.Media, aggregator)
	commentService := services.NewCommentService(d.Comments, aggregator)
	queryService := services.NewQueryService(d.Posts, aggregator)

	return Handlers{
		Users:              controllers.NewUserController(userService, d.MaxUploadBytes),
		Posts:              controllers.NewPostController(postService, queryService, d.MaxUploadBytes),
		Comments:           controllers.NewCommentController(commentService),
		Auth:               middleware.NewAuth(services.NewIdentityGuard(d.Credentials)),
		Media:              blobs.Handler(d.Media),
		CORSAllowedOrigins: d.CORSAllowedOrigins,
	}
}
