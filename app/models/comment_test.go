package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:       1,
				PostID:   1,
				AuthorID: 1,
				Thoughts: "Nice!",
				Written:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "unset references pass validation",
			comment: &Comment{
				ID:       1,
				Thoughts: "Nice!",
				Written:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing thoughts",
			comment: &Comment{
				ID:       1,
				PostID:   1,
				AuthorID: 1,
				Written:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero written time",
			comment: &Comment{
				ID:       1,
				PostID:   1,
				AuthorID: 1,
				Thoughts: "Nice!",
				Written:  time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentSetAuthor(t *testing.T) {
	comment := &Comment{PostID: 1, Thoughts: "Nice!"}

	err := comment.SetAuthor(nil)
	assert.Error(t, err)

	user := &User{ID: 42, Username: "alice"}
	err = comment.SetAuthor(user)
	assert.NoError(t, err)
	assert.Equal(t, 42, comment.AuthorID)
	assert.Equal(t, user, comment.Author)
}

func TestCommentProjection(t *testing.T) {
	comment := &Comment{
		ID:       3,
		PostID:   1,
		AuthorID: 2,
		Thoughts: "Nice!",
		Written:  time.Date(2016, 5, 6, 7, 8, 9, 0, time.UTC),
		Author:   &User{ID: 2, Username: "alice", Password: "secret-hash"},
	}

	data, err := json.Marshal(comment)
	assert.NoError(t, err)

	var projection map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &projection))
	assert.Equal(t, "Nice!", projection["thoughts"])
	assert.Equal(t, "2016-05-06T07:08:09Z", projection["written"])
	assert.NotContains(t, string(data), "secret-hash")

	author, ok := projection["author"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "alice", author["username"])
}
