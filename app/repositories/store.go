package repositories

import (
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"

	"socialfeed/app/logging"
)

// Store owns the Badger database shared by the entity repositories.
type Store struct {
	db     *badger.DB
	dbPath string
}

// NewStore opens the Badger database at path. An empty path opens an
// in-memory database, which is what the tests use.
func NewStore(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{log: logging.GetLogger("repositories.badger")}).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &Store{db: db, dbPath: path}, nil
}

// Users returns the user repository backed by this store.
func (s *Store) Users() *BadgerUserRepository {
	return NewBadgerUserRepository(s.db)
}

// Posts returns the post repository backed by this store.
func (s *Store) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(s.db)
}

// Comments returns the comment repository backed by this store.
func (s *Store) Comments() *BadgerCommentRepository {
	return NewBadgerCommentRepository(s.db)
}

// Backup writes a full backup of the database to w.
func (s *Store) Backup(w io.Writer) (uint64, error) {
	since, err := s.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup: %w", err)
	}
	return since, nil
}

// Restore loads a backup produced by Backup.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.Load(r, 16); err != nil {
		return fmt.Errorf("load backup: %w", err)
	}
	return nil
}

// Clear drops every key.
func (s *Store) Clear() error {
	return s.db.DropAll()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// badgerLogger routes Badger's internal logging through slog.
type badgerLogger struct {
	log logging.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}
