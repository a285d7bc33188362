package blobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"socialfeed/app/logging"
)

// FilesystemConfig holds configuration for the filesystem blob store.
type FilesystemConfig struct {
	// Basedir is the directory blobs are written to
	Basedir string

	// BaseURL prefixes the generated names in returned URLs
	BaseURL string
}

// FilesystemStore keeps images as flat files under Basedir.
type FilesystemStore struct {
	cfg FilesystemConfig
	log logging.Logger
}

var _ Store = (*FilesystemStore)(nil)

// NewFilesystemStore creates the base directory if needed.
func NewFilesystemStore(ctx context.Context, cfg FilesystemConfig) (*FilesystemStore, error) {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	store := &FilesystemStore{
		cfg: cfg,
		log: logging.GetLogger("blobs.filesystem").With(
			logging.Group("store", "basedir", cfg.Basedir),
		),
	}

	if err := os.MkdirAll(cfg.Basedir, 0o755); err != nil {
		store.log.ErrorContext(ctx, "init storage failed", "error", err)
		return nil, fmt.Errorf("mkdir all: %w", err)
	}

	return store, nil
}

// Put sniffs data, rejects anything that is not an image and writes it
// under a fresh name carrying the detected extension.
func (s *FilesystemStore) Put(ctx context.Context, data []byte, filename string) (url string, err error) {
	name := ""

	defer func() {
		log := s.log.With(logging.Group("blob", "name", name, "upload", filename, "size", len(data)))
		if err != nil {
			log.ErrorContext(ctx, "blob store failed", "error", err)
		} else {
			log.DebugContext(ctx, "blob stored")
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	mime, err := sniffImage(data)
	if err != nil {
		return "", err
	}

	name = uuid.NewString() + mime.Extension()
	if err := s.write(name, data); err != nil {
		return "", err
	}

	return s.cfg.BaseURL + "/" + name, nil
}

// Fetch reads a stored blob back.
func (s *FilesystemStore) Fetch(ctx context.Context, name string) (blob *Blob, err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.log.ErrorContext(ctx, "blob fetch failed", "name", name, "error", err)
		}
	}()

	filename, err := s.filename(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return &Blob{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// write stores data through a temp file and a rename so readers never see
// a partial blob.
func (s *FilesystemStore) write(name string, data []byte) error {
	filename, err := s.filename(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.cfg.Basedir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *FilesystemStore) filename(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.cfg.Basedir, name), nil
}

func sniffImage(data []byte) (*mimetype.MIME, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mime.String())
	}
	return mime, nil
}
