package repositories

import (
	"fmt"
	"time"

	"journal/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db  *badger.DB
	seq *entitySequence
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db, seq: newEntitySequence(db, UserSeqKey)}
}

// userRecord is the stored shape of a user. It exists because the model
// hides the password hash from serialization, while the store must keep it.
type userRecord struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	LastLogged time.Time `json:"last_logged"`
}

func (rec *userRecord) toModel() *models.User {
	return &models.User{
		ID:         rec.ID,
		Username:   rec.Username,
		Password:   rec.Password,
		LastLogged: rec.LastLogged,
	}
}

func recordFromUser(user *models.User) *userRecord {
	return &userRecord{
		ID:         user.ID,
		Username:   user.Username,
		Password:   user.Password,
		LastLogged: user.LastLogged,
	}
}

// Create creates a new user. The username is claimed through a unique
// index key inside the same transaction as the record, so a duplicate
// fails with ErrConflict and writes nothing.
func (r *BadgerUserRepository) Create(user *models.User) error {
	id, err := r.seq.next()
	if err != nil {
		return err
	}
	user.ID = id
	user.BeforeCreate()

	return runUpdate(r.db, func(txn *badger.Txn) error {
		nameKey := []byte(UsernameIndexPrefix + user.Username)
		if err := setUniqueIndex(txn, nameKey, user.ID); err != nil {
			return err
		}

		data, err := marshalEntity(recordFromUser(user))
		if err != nil {
			return err
		}
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := userByID(txn, id)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername retrieves a user by exact, case-sensitive username.
// Absence is reported as ErrNotFound, never as a panic or a nil user.
func (r *BadgerUserRepository) FindByUsername(username string) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, []byte(UsernameIndexPrefix+username))
		if err != nil {
			return err
		}
		found, err := userByID(txn, id)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update rewrites an existing user record. The username is immutable,
// so the index key is left alone.
func (r *BadgerUserRepository) Update(user *models.User) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))
		ok, err := keyExists(txn, key)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		data, err := marshalEntity(recordFromUser(user))
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// userByID loads a user record within an open transaction
func userByID(txn *badger.Txn, id int) (*models.User, error) {
	key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec userRecord
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}
