package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/app/models"
	"socialfeed/app/services"
)

// PostController handles HTTP requests for posts
type PostController struct {
	posts          *services.PostService
	queries        *services.QueryService
	maxUploadBytes int64
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, queries *services.QueryService, maxUploadBytes int64) *PostController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &PostController{posts: posts, queries: queries, maxUploadBytes: maxUploadBytes}
}

// postForm is the body of create and update requests, sent either as JSON
// or as multipart form fields next to the image.
type postForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	image       *services.Upload
}

func (pc *PostController) readPostForm(w http.ResponseWriter, r *http.Request) (*postForm, error) {
	var form postForm
	if !isMultipart(r) {
		if err := decodeJSON(r, &form); err != nil {
			return nil, err
		}
		return &form, nil
	}

	upload, err := readForm(w, r, pc.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	form.Title = r.FormValue("title")
	form.Description = r.FormValue("description")
	form.image = upload
	return &form, nil
}

// Create handles POST /posts/createPost
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	form, err := pc.readPostForm(w, r)
	if err != nil {
		sendError(w, err)
		return
	}

	post, err := pc.posts.Create(r.Context(), id, services.PostInput{
		Title:       form.Title,
		Description: form.Description,
		Image:       form.image,
	})
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update handles PUT /posts/updatePost/{id}
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	form, err := pc.readPostForm(w, r)
	if err != nil {
		sendError(w, err)
		return
	}

	patch := &models.PostPatch{Title: form.Title, Description: form.Description}
	post, err := pc.posts.Update(r.Context(), id, mux.Vars(r)["id"], patch, form.image)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/delete/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := pc.posts.Delete(r.Context(), id, mux.Vars(r)["id"]); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// Like handles PUT /posts/{id}/like
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.Like(r.Context(), id, mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Unlike handles PUT /posts/{id}/unlike
func (pc *PostController) Unlike(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.Unlike(r.Context(), id, mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Index handles GET /posts/allPosts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.queries.ListAll(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Paginate handles GET /posts/paginationPost?page=&limit=
func (pc *PostController) Paginate(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", services.DefaultPage)
	limit := queryInt(r, "limit", services.DefaultLimit)

	result, err := pc.queries.Paginate(r.Context(), page, limit)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// Search handles GET /posts/search?q=
func (pc *PostController) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.queries.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles GET /posts/singlePost/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.queries.GetOne(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// ByAuthor handles GET /posts/user/{userId}
func (pc *PostController) ByAuthor(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.queries.ByAuthor(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}
