package controllers

import "net/http"

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound answers unknown routes with a JSON error.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusNotFound, errorResponse{
		Message: "route not found",
		Status:  http.StatusNotFound,
	})
}
