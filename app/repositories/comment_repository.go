package repositories

import (
	"fmt"
	"time"

	"journal/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db  *badger.DB
	seq *entitySequence
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db, seq: newEntitySequence(db, CommentSeqKey)}
}

// commentRecord is the stored shape of a comment; the author projection
// is joined back in at read time.
type commentRecord struct {
	ID       int       `json:"id"`
	PostID   int       `json:"post_id"`
	AuthorID int       `json:"author_id"`
	Thoughts string    `json:"thoughts"`
	Written  time.Time `json:"written"`
}

func (rec *commentRecord) toModel() *models.Comment {
	return &models.Comment{
		ID:       rec.ID,
		PostID:   rec.PostID,
		AuthorID: rec.AuthorID,
		Thoughts: rec.Thoughts,
		Written:  rec.Written,
	}
}

// Create creates a new comment. Both the parent post and the authoring
// user must resolve inside the same transaction, otherwise the create
// fails with ErrNotFound and nothing is written. The comment record and
// the author back-reference commit together.
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	id, err := r.seq.next()
	if err != nil {
		return err
	}
	comment.ID = id
	comment.BeforeCreate()

	return runUpdate(r.db, func(txn *badger.Txn) error {
		postKey := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, comment.PostID))
		ok, err := keyExists(txn, postKey)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		userKey := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, comment.AuthorID))
		ok, err = keyExists(txn, userKey)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		rec := commentRecord{
			ID:       comment.ID,
			PostID:   comment.PostID,
			AuthorID: comment.AuthorID,
			Thoughts: comment.Thoughts,
			Written:  comment.Written,
		}
		data, err := marshalEntity(&rec)
		if err != nil {
			return err
		}

		// Post ID in the key gives cheap per-post listing
		key := []byte(fmt.Sprintf("%s%d:%d", CommentKeyPrefix, comment.PostID, comment.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}

		authorKey := []byte(fmt.Sprintf("%s%d:%d", AuthorCommentPrefix, comment.AuthorID, comment.ID))
		return txn.Set(authorKey, key)
	})
}

// GetByID retrieves a comment by ID with its author attached
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rec commentRecord
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			if rec.ID == id {
				comment = rec.toModel()
				return attachAuthor(txn, comment)
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := commentsForPost(txn, postID)
		if err != nil {
			return err
		}
		comments = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByAuthor retrieves all comments written by a user, via the author
// back-reference keys
func (r *BadgerCommentRepository) ListByAuthor(authorID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", AuthorCommentPrefix, authorID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var commentKey []byte
			err := it.Item().Value(func(val []byte) error {
				commentKey = append([]byte(nil), val...)
				return nil
			})
			if err != nil {
				return err
			}

			item, err := txn.Get(commentKey)
			if err != nil {
				return err
			}
			var rec commentRecord
			err = item.Value(func(val []byte) error {
				return unmarshalEntity(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			comment := rec.toModel()
			if err := attachAuthor(txn, comment); err != nil {
				return err
			}
			comments = append(comments, comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// commentsForPost loads a post's comments within an open transaction
func commentsForPost(txn *badger.Txn, postID int) ([]*models.Comment, error) {
	var comments []*models.Comment

	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(fmt.Sprintf("%s%d:", CommentKeyPrefix, postID))
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var rec commentRecord
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &rec)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment: %v", err)
		}
		comment := rec.toModel()
		if err := attachAuthor(txn, comment); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// attachAuthor joins the authoring user onto a comment. A comment whose
// author record is gone keeps a nil Author rather than failing the read.
func attachAuthor(txn *badger.Txn, comment *models.Comment) error {
	author, err := userByID(txn, comment.AuthorID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	comment.Author = author
	return nil
}
