package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix     = "post:"
	UserKeyPrefix     = "user:"
	CommentKeyPrefix  = "comment:"
	CategoryKeyPrefix = "category:"

	// Unique index keys, written in the same transaction as the entity
	PostTitleIndexPrefix    = "idx:post:title:"
	UsernameIndexPrefix     = "idx:user:name:"
	CategoryNameIndexPrefix = "idx:category:name:"

	// Association pair keys, one per direction
	PostCategoryPrefix = "assoc:postcat:"
	CategoryPostPrefix = "assoc:catpost:"

	// Comment back-reference by author
	AuthorCommentPrefix = "idx:comment:author:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey     = "seq:post"
	UserSeqKey     = "seq:user"
	CommentSeqKey  = "seq:comment"
	CategorySeqKey = "seq:category"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("uniqueness conflict")
)

// seqBandwidth is the lease size for badger sequences. Ids leased but
// unused at shutdown are skipped, which is fine; ids only need to be
// unique, not dense.
const seqBandwidth = 64

// entitySequence hands out record ids from a badger-managed sequence.
// The sequence state lives outside every transaction's read set, so id
// allocation never makes two unrelated writers collide.
type entitySequence struct {
	db   *badger.DB
	key  string
	once sync.Once
	seq  *badger.Sequence
	err  error
}

func newEntitySequence(db *badger.DB, key string) *entitySequence {
	return &entitySequence{db: db, key: key}
}

// next returns the next record id, starting at 1
func (s *entitySequence) next() (int, error) {
	s.once.Do(func() {
		s.seq, s.err = s.db.GetSequence([]byte(s.key), seqBandwidth)
	})
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.seq.Next()
	if err != nil {
		return 0, err
	}
	return int(n) + 1, nil
}

func encodeID(id int) []byte {
	return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func decodeID(val []byte) int {
	return int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
}

// setUniqueIndex claims an index key for the given id, failing with
// ErrConflict if another record already holds it. Reading the key first
// puts it in the transaction's read set, so a racing claim of the same
// key cannot also commit.
func setUniqueIndex(txn *badger.Txn, key []byte, id int) error {
	_, err := txn.Get(key)
	if err == nil {
		return ErrConflict
	}
	if err != badger.ErrKeyNotFound {
		return err
	}
	return txn.Set(key, encodeID(id))
}

// lookupIndex resolves a unique index key to a record id
func lookupIndex(txn *badger.Txn, key []byte) (int, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		id = decodeID(val)
		return nil
	})
	return id, err
}

// keyExists reports whether a record key is present
func keyExists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// maxCommitRetries bounds how often a lost commit is re-run before the
// failure surfaces as a storage error.
const maxCommitRetries = 10

// runUpdate executes fn in a read-write transaction, re-running it when
// the commit loses badger's optimistic conflict detection. A lost commit
// only means another writer touched an overlapping key, for instance two
// updates of the same record; it says nothing about uniqueness.
// Re-running lets the index checks inside fn decide: a genuine collision
// returns ErrConflict from setUniqueIndex on the next run, anything else
// goes through. fn must tolerate re-execution.
func runUpdate(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < maxCommitRetries; i++ {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction kept conflicting after %d retries: %w", maxCommitRetries, err)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
