package models

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
}

// IsOwnedBy reports whether userID is the post's author.
func (p *Post) IsOwnedBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// LikedBy reports whether userID is in the likes set.
func (p *Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// Like adds userID to the likes set. It returns false if it was already there.
func (p *Post) Like(userID string) bool {
	if p.LikedBy(userID) {
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// Unlike removes userID from the likes set. It returns false if it was absent.
func (p *Post) Unlike(userID string) bool {
	i := slices.Index(p.Likes, userID)
	if i < 0 {
		return false
	}
	p.Likes = slices.Delete(p.Likes, i, i+1)
	return true
}

// Matches reports whether title or description contains query, ignoring case.
func (p *Post) Matches(query string) bool {
	return containsFold(p.Title, query) || containsFold(p.Description, query)
}

// Clone returns a copy that does not share the likes slice.
func (p *Post) Clone() *Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	return &c
}
