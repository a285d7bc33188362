package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"socialfeed/app/models"
)

// BadgerUserRepository implements UserRepository using BadgerDB.
// Email uniqueness is enforced through a user_email index key.
type BadgerUserRepository struct {
	db *badger.DB
}

var _ UserRepository = (*BadgerUserRepository)(nil)

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user, assigning an id if none is set.
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = newID()
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := claimEmail(txn, user.Email, user.ID); err != nil {
			return err
		}

		data, err := marshalEntity(toStoredUser(user))
		if err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail resolves a user through the email index.
func (r *BadgerUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		user, err = getUser(txn, string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every user.
func (r *BadgerUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	users := []*models.User{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var stored storedUser
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &stored)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal user: %w", err)
			}
			users = append(users, stored.user())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update replaces a stored user, moving the email index when the address changes.
func (r *BadgerUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		existing, err := getUser(txn, user.ID)
		if err != nil {
			return err
		}

		if models.NormalizeEmail(existing.Email) != models.NormalizeEmail(user.Email) {
			if err := claimEmail(txn, user.Email, user.ID); err != nil {
				return err
			}
			if err := txn.Delete(userEmailKey(existing.Email)); err != nil {
				return err
			}
		}

		data, err := marshalEntity(toStoredUser(user))
		if err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
}

// Delete removes a user and its email index entry.
func (r *BadgerUserRepository) Delete(ctx context.Context, id string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		existing, err := getUser(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(userEmailKey(existing.Email)); err != nil {
			return err
		}
		return txn.Delete(userKey(id))
	})
}

func getUser(txn *badger.Txn, id string) (*models.User, error) {
	item, err := txn.Get(userKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var stored storedUser
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &stored)
	}); err != nil {
		return nil, err
	}
	return stored.user(), nil
}

// claimEmail points the email index at id, failing if another user holds it.
func claimEmail(txn *badger.Txn, email, id string) error {
	key := userEmailKey(email)

	item, err := txn.Get(key)
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return err
	default:
		owner, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if string(owner) != id {
			return fmt.Errorf("%w: email %s", ErrDuplicate, email)
		}
	}

	return txn.Set(key, []byte(id))
}
