package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"socialfeed/app/models"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments are keyed by post so ListByPost is a prefix scan; a comment_id
// index resolves a bare comment id to its key.
type BadgerCommentRepository struct {
	db *badger.DB
}

var _ CommentRepository = (*BadgerCommentRepository)(nil)

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment, assigning an id if none is set.
func (r *BadgerCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if comment.ID == "" {
		comment.ID = newID()
	}

	data, err := marshalEntity(comment)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(commentIDKey(comment.ID), []byte(comment.PostID)); err != nil {
			return err
		}
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		key, err := lookupCommentKey(txn, id)
		if err != nil {
			return err
		}

		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves all comments for a post, newest first
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentKey(postID, "")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			// Ids may contain the key separator, so "p1:x" also lands under "p1:".
			if comment.PostID != postID {
				continue
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortComments(comments)
	return comments, nil
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(ctx context.Context, id string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key, err := lookupCommentKey(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(commentIDKey(id)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func lookupCommentKey(txn *badger.Txn, id string) ([]byte, error) {
	item, err := txn.Get(commentIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	postID, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return commentKey(string(postID), id), nil
}
