package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Written.IsZero() {
		return errors.New("written cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.Written.IsZero() {
		c.Written = time.Now()
	}
}

// SetAuthor sets the authoring user and updates the AuthorID
func (c *Comment) SetAuthor(user *User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	c.Author = user
	c.AuthorID = user.ID
	return nil
}
