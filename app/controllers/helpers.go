package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"socialfeed/app/middleware"
	"socialfeed/app/services"
)

// DefaultMaxUploadBytes bounds request bodies when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// imageField is the multipart field carrying uploads.
const imageField = "image"

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError reports err with the status of its kind.
func sendError(w http.ResponseWriter, err error) {
	status := services.StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	sendJSON(w, status, errorResponse{Message: message, Status: status})
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", services.ErrInvalidArgument, err)
}

// identity returns the caller set by the auth middleware, reporting an
// error response when there is none.
func identity(w http.ResponseWriter, r *http.Request) (services.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, services.ErrNoCredential)
	}
	return id, ok
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(fmt.Errorf("decode body: %w", err))
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readForm parses a multipart body. The returned upload is nil when the
// image field is absent.
func readForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*services.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, badRequest(fmt.Errorf("parse form: %w", err))
	}

	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, badRequest(fmt.Errorf("read image: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, badRequest(fmt.Errorf("read image: %w", err))
	}
	return &services.Upload{Data: data, Filename: header.Filename}, nil
}

// queryInt parses a positive integer parameter, falling back on anything
// missing or non-numeric.
func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
