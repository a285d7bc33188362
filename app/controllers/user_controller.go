package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/app/models"
	"socialfeed/app/services"
)

// UserController handles HTTP requests for accounts
type UserController struct {
	users          *services.UserService
	maxUploadBytes int64
}

// NewUserController creates a new UserController
func NewUserController(users *services.UserService, maxUploadBytes int64) *UserController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &UserController{users: users, maxUploadBytes: maxUploadBytes}
}

type authResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type pictureResponse struct {
	Message        string `json:"message"`
	ProfilePicture string `json:"profilePicture"`
}

// Register handles POST /users/register
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decodeJSON(r, &reg); err != nil {
		sendError(w, err)
		return
	}

	result, err := uc.users.Register(r.Context(), &reg)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// Login handles POST /users/login
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, err)
		return
	}

	result, err := uc.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, authResponse{
		Token: result.Token,
		User:  loginUser{ID: result.User.ID, Email: result.User.Email},
	})
}

// Profile handles GET /users/profile
func (uc *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := uc.users.Profile(r.Context(), id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/UpdateProfile
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		sendError(w, err)
		return
	}

	user, err := uc.users.UpdateProfile(r.Context(), id, &patch)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// ProfilePicture handles PUT /users/profilePicture
func (uc *UserController) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if !isMultipart(r) {
		sendError(w, services.ErrImageRequired)
		return
	}
	upload, err := readForm(w, r, uc.maxUploadBytes)
	if err != nil {
		sendError(w, err)
		return
	}

	user, err := uc.users.SetProfilePicture(r.Context(), id, upload)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, pictureResponse{
		Message:        "Profile picture updated successfully",
		ProfilePicture: user.ProfilePicture,
	})
}

// List handles GET /users
func (uc *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := uc.users.List(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{id}
func (uc *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, err := uc.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/update/{id}
func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var patch models.AccountPatch
	if err := decodeJSON(r, &patch); err != nil {
		sendError(w, err)
		return
	}

	user, err := uc.users.UpdateAccount(r.Context(), id, mux.Vars(r)["id"], patch)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/delete/{id}
func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := uc.users.DeleteAccount(r.Context(), id, mux.Vars(r)["id"]); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
