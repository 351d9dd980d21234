package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:      1,
				Title:   "Valid Title",
				Text:    "Something worth writing down",
				Created: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing title",
			post: &Post{
				ID:      1,
				Title:   "",
				Text:    "Something worth writing down",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing text",
			post: &Post{
				ID:      1,
				Title:   "Valid Title",
				Text:    "",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				ID:      1,
				Title:   "Valid Title",
				Text:    "Something worth writing down",
				Created: time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Title: "Title", Text: "Text"}
	post.BeforeCreate()
	assert.False(t, post.Created.IsZero())

	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	post = &Post{Title: "Title", Text: "Text", Created: created}
	post.BeforeCreate()
	assert.Equal(t, created, post.Created)
}

func TestPostAddComment(t *testing.T) {
	post := &Post{ID: 7, Title: "Title", Text: "Text", Created: time.Now()}

	err := post.AddComment(nil)
	assert.Error(t, err)

	comment := &Comment{AuthorID: 1, Thoughts: "Nice!"}
	err = post.AddComment(comment)
	assert.NoError(t, err)
	assert.Equal(t, 7, comment.PostID)
	assert.Len(t, post.Comments, 1)
}

func TestPostHasCategory(t *testing.T) {
	post := &Post{
		Categories: []*Category{{ID: 1, Name: "go"}, {ID: 2, Name: "journal"}},
	}
	assert.True(t, post.HasCategory(2))
	assert.False(t, post.HasCategory(3))
}

func TestPostProjection(t *testing.T) {
	post := &Post{
		ID:      1,
		Title:   "Hello",
		Text:    "World",
		Created: time.Date(2016, 1, 2, 3, 4, 5, 0, time.UTC),
		Categories: []*Category{
			{ID: 1, Name: "go"},
		},
		Comments: []*Comment{{ID: 1, Thoughts: "hidden from post projection"}},
	}

	data, err := json.Marshal(post)
	assert.NoError(t, err)

	var projection map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &projection))
	assert.Equal(t, "Hello", projection["title"])
	assert.Equal(t, "World", projection["text"])
	assert.Equal(t, "2016-01-02T03:04:05Z", projection["created"])
	assert.Contains(t, projection, "categories")
	assert.NotContains(t, projection, "comments")
}
