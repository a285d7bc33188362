package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultProfilePicture is assigned to users that never uploaded one.
const DefaultProfilePicture = "https://example.com/default-profile-picture.png"

// User is a registered account. Password holds the credential hash and is
// never serialized.
type User struct {
	ID             string    `json:"id" validate:"required"`
	Username       string    `json:"username" validate:"required,max=50"`
	Email          string    `json:"email" validate:"required,email"`
	Password       string    `json:"-"`
	ProfilePicture string    `json:"profilePicture"`
	Bio            string    `json:"bio" validate:"max=500"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Post is owned by its author. Likes holds user ids, each at most once.
// Comments are found through their post reference.
type Post struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Image       string    `json:"image,omitempty" validate:"omitempty,url"`
	AuthorID    string    `json:"authorId" validate:"required"`
	Likes       []string  `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment references its post by id.
type Comment struct {
	ID        string    `json:"id" validate:"required"`
	Text      string    `json:"text" validate:"required,max=1000"`
	AuthorID  string    `json:"userId" validate:"required"`
	PostID    string    `json:"postId" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}
