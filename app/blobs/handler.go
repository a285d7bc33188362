package blobs

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Fetcher reads stored blobs by name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (*Blob, error)
}

// Handler serves GET /media/{name}.
func Handler(store Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		blob, err := store.Fetch(r.Context(), name)
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
			http.NotFound(w, r)
			return
		case err != nil:
			http.Error(w, "failed to read media", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", blob.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, blob.Name, time.Time{}, bytes.NewReader(blob.Data))
	}
}
