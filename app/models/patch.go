package models

import "strings"

// PostPatch holds the fields a post owner may change. Empty values leave the
// stored field untouched.
type PostPatch struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// Validate checks the patch.
func (p *PostPatch) Validate() error {
	return validate.Struct(p)
}

// Apply copies the supplied fields onto post.
func (p *PostPatch) Apply(post *Post) {
	if p.Title != "" {
		post.Title = p.Title
	}
	if p.Description != "" {
		post.Description = p.Description
	}
}

// ProfilePatch is the allow-list for PUT /users/UpdateProfile.
type ProfilePatch struct {
	Username string `json:"username" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
}

// Validate trims the patch and checks it.
func (p *ProfilePatch) Validate() error {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = NormalizeEmail(p.Email)
	p.Bio = strings.TrimSpace(p.Bio)
	return validate.Struct(p)
}

// Apply copies the supplied fields onto user.
func (p *ProfilePatch) Apply(user *User) {
	if p.Username != "" {
		user.Username = p.Username
	}
	if p.Email != "" {
		user.Email = p.Email
	}
	if p.Bio != "" {
		user.Bio = p.Bio
	}
}

// AccountPatch is the allow-list for PUT /users/update/{id}.
type AccountPatch struct {
	Username string `json:"username" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Profile widens the account patch to a profile patch without a bio.
func (p AccountPatch) Profile() *ProfilePatch {
	return &ProfilePatch{Username: p.Username, Email: p.Email}
}
