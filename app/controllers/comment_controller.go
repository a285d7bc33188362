package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

type commentRequest struct {
	Text string `json:"text"`
}

// Add handles POST /comments/add/{postId}
func (cc *CommentController) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, err)
		return
	}

	comment, err := cc.comments.Add(r.Context(), id, mux.Vars(r)["postId"], req.Text)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Delete handles DELETE /comments/delete/{id}
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := cc.comments.Delete(r.Context(), id, mux.Vars(r)["id"]); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, messageResponse{Message: "Comment deleted"})
}
