package repositories

import (
	"fmt"
	"time"

	"journal/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db  *badger.DB
	seq *entitySequence
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db, seq: newEntitySequence(db, PostSeqKey)}
}

// postRecord is the stored shape of a post. Categories and comments live
// in their own records and are joined back in at read time.
type postRecord struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

func (rec *postRecord) toModel() *models.Post {
	return &models.Post{
		ID:      rec.ID,
		Title:   rec.Title,
		Text:    rec.Text,
		Created: rec.Created,
	}
}

func recordFromPost(post *models.Post) *postRecord {
	return &postRecord{
		ID:      post.ID,
		Title:   post.Title,
		Text:    post.Text,
		Created: post.Created,
	}
}

// Create creates a new post. The title is claimed through a unique index
// key in the same transaction as the record, so a duplicate title fails
// with ErrConflict and leaves the store untouched.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	id, err := r.seq.next()
	if err != nil {
		return err
	}
	post.ID = id
	post.BeforeCreate()

	return runUpdate(r.db, func(txn *badger.Txn) error {
		titleKey := []byte(PostTitleIndexPrefix + post.Title)
		if err := setUniqueIndex(txn, titleKey, post.ID); err != nil {
			return err
		}

		data, err := marshalEntity(recordFromPost(post))
		if err != nil {
			return err
		}
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves a post by ID together with its categories and comments
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := postByID(txn, id)
		if err != nil {
			return err
		}
		if err := loadPostRelations(txn, found); err != nil {
			return err
		}
		post = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List retrieves all posts in key order, each with categories and comments
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rec postRecord
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			posts = append(posts, rec.toModel())
		}

		for _, post := range posts {
			if err := loadPostRelations(txn, post); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update mutates a post's title and text in place. The creation timestamp
// is preserved from the stored record. A title collision with a different
// post fails with ErrConflict; a missing id fails with ErrNotFound. Both
// checks happen in the same transaction as the write.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		existing, err := postByID(txn, post.ID)
		if err != nil {
			return err
		}

		if post.Title != existing.Title {
			oldKey := []byte(PostTitleIndexPrefix + existing.Title)
			if err := txn.Delete(oldKey); err != nil {
				return err
			}
			newKey := []byte(PostTitleIndexPrefix + post.Title)
			if err := setUniqueIndex(txn, newKey, post.ID); err != nil {
				return err
			}
		}

		post.Created = existing.Created
		data, err := marshalEntity(recordFromPost(post))
		if err != nil {
			return err
		}
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))
		return txn.Set(key, data)
	})
}

// postByID loads a bare post record within an open transaction
func postByID(txn *badger.Txn, id int) (*models.Post, error) {
	key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec postRecord
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

// loadPostRelations joins categories and comments onto a post
func loadPostRelations(txn *badger.Txn, post *models.Post) error {
	categories, err := categoriesForPost(txn, post.ID)
	if err != nil {
		return err
	}
	post.Categories = categories

	comments, err := commentsForPost(txn, post.ID)
	if err != nil {
		return err
	}
	post.Comments = comments
	return nil
}
