package repositories

import (
	"fmt"

	"journal/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db  *badger.DB
	seq *entitySequence
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db, seq: newEntitySequence(db, CategorySeqKey)}
}

type categoryRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (rec *categoryRecord) toModel() *models.Category {
	return &models.Category{ID: rec.ID, Name: rec.Name}
}

// Create creates a new category, claiming its name through a unique index
// key in the same transaction
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	id, err := r.seq.next()
	if err != nil {
		return err
	}
	category.ID = id

	return runUpdate(r.db, func(txn *badger.Txn) error {
		nameKey := []byte(CategoryNameIndexPrefix + category.Name)
		if err := setUniqueIndex(txn, nameKey, category.ID); err != nil {
			return err
		}

		rec := categoryRecord{ID: category.ID, Name: category.Name}
		data, err := marshalEntity(&rec)
		if err != nil {
			return err
		}
		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, category.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves a category by ID together with the posts carrying it
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category *models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := categoryByID(txn, id)
		if err != nil {
			return err
		}
		posts, err := postsForCategory(txn, id)
		if err != nil {
			return err
		}
		found.Posts = posts
		category = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// List retrieves all categories, each with the posts carrying it
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rec categoryRecord
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal category: %v", err)
			}
			categories = append(categories, rec.toModel())
		}

		for _, category := range categories {
			posts, err := postsForCategory(txn, category.ID)
			if err != nil {
				return err
			}
			category.Posts = posts
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Attach links a post and a category. Both must exist, and the pair must
// not already be linked; the pair keys for both directions commit in one
// transaction.
func (r *BadgerCategoryRepository) Attach(postID, categoryID int) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		postKey := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, postID))
		ok, err := keyExists(txn, postKey)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		catKey := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, categoryID))
		ok, err = keyExists(txn, catKey)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		pairKey := []byte(fmt.Sprintf("%s%d:%d", PostCategoryPrefix, postID, categoryID))
		ok, err = keyExists(txn, pairKey)
		if err != nil {
			return err
		}
		if ok {
			return ErrConflict
		}

		if err := txn.Set(pairKey, nil); err != nil {
			return err
		}
		reverseKey := []byte(fmt.Sprintf("%s%d:%d", CategoryPostPrefix, categoryID, postID))
		return txn.Set(reverseKey, nil)
	})
}

// ListByPost retrieves all categories attached to a post
func (r *BadgerCategoryRepository) ListByPost(postID int) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := categoriesForPost(txn, postID)
		if err != nil {
			return err
		}
		categories = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// categoryByID loads a bare category record within an open transaction
func categoryByID(txn *badger.Txn, id int) (*models.Category, error) {
	key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, id))
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec categoryRecord
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

// categoriesForPost resolves a post's association pairs within an open
// transaction
func categoriesForPost(txn *badger.Txn, postID int) ([]*models.Category, error) {
	var categories []*models.Category

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(fmt.Sprintf("%s%d:", PostCategoryPrefix, postID))
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var categoryID int
		_, err := fmt.Sscanf(string(it.Item().Key()[len(prefix):]), "%d", &categoryID)
		if err != nil {
			return nil, fmt.Errorf("malformed association key %q: %v", it.Item().Key(), err)
		}
		category, err := categoryByID(txn, categoryID)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// postsForCategory resolves a category's association pairs within an open
// transaction. Posts come back bare, without their own relations, to keep
// the projection acyclic.
func postsForCategory(txn *badger.Txn, categoryID int) ([]*models.Post, error) {
	var posts []*models.Post

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(fmt.Sprintf("%s%d:", CategoryPostPrefix, categoryID))
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var postID int
		_, err := fmt.Sscanf(string(it.Item().Key()[len(prefix):]), "%d", &postID)
		if err != nil {
			return nil, fmt.Errorf("malformed association key %q: %v", it.Item().Key(), err)
		}
		post, err := postByID(txn, postID)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
