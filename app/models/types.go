package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a single journal entry. Categories and Comments are
// populated by the repository from their own records; comments are
// serialized separately from the post projection.
type Post struct {
	ID         int         `json:"id" validate:"gte=0"`
	Title      string      `json:"title" validate:"required,max=128"`
	Text       string      `json:"text" validate:"required"`
	Created    time.Time   `json:"created"`
	Categories []*Category `json:"categories"`
	Comments   []*Comment  `json:"-" validate:"-"`
}

// User represents a registered author. The password hash never leaves
// the process through serialization.
type User struct {
	ID         int       `json:"id" validate:"gte=0"`
	Username   string    `json:"username" validate:"required,max=255"`
	Password   string    `json:"-" validate:"required"`
	LastLogged time.Time `json:"-"`
}

// Comment represents a reply to a post, written by a registered user.
type Comment struct {
	ID int `json:"id" validate:"gte=0"`
	// Whether the referenced post and author exist is decided by the
	// repository at write time, so no range check here.
	PostID   int       `json:"-" validate:"-"`
	AuthorID int       `json:"-" validate:"-"`
	Thoughts string    `json:"thoughts" validate:"required,max=1000"`
	Written  time.Time `json:"written"`
	Author   *User     `json:"author,omitempty" validate:"-"`
}

// Category is a tag attached to posts, many-to-many.
type Category struct {
	ID    int     `json:"id" validate:"gte=0"`
	Name  string  `json:"name" validate:"required,max=128"`
	Posts []*Post `json:"posts,omitempty" validate:"-"`
}
