// Package blobs stores uploaded images and serves them back by name.
package blobs

import (
	"context"
	"errors"
)

var (
	ErrEmpty       = errors.New("empty payload")
	ErrNotImage    = errors.New("payload is not an image")
	ErrNotFound    = errors.New("blob not found")
	ErrInvalidName = errors.New("invalid blob name")
)

// Store accepts a binary payload and returns a stable URL for it.
type Store interface {
	// Put stores data and returns its public URL. The original filename is
	// informational only; stored names are generated.
	Put(ctx context.Context, data []byte, filename string) (string, error)
}

// Blob is a stored payload with its sniffed content type.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
}
