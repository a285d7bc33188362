package models

import "strings"

// CommentView is a comment with its author resolved.
type CommentView struct {
	*Comment
	Author *PublicProfile `json:"author"`
}

// AuthoredPost is a post with its author resolved, returned by mutations.
type AuthoredPost struct {
	*Post
	Author *PublicProfile `json:"author"`
}

// PostView is a post with its author resolved and its comments attached,
// newest first.
type PostView struct {
	*Post
	Author   *PublicProfile `json:"author"`
	Comments []*CommentView `json:"comments"`
}

// PostPage is one page of the feed.
type PostPage struct {
	Posts       []*PostView `json:"posts"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	TotalPosts  int         `json:"totalPosts"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
