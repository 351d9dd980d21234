package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	user := &User{ID: 1, Username: "alice", Password: "hash"}
	assert.NoError(t, user.Validate())

	user = &User{ID: 1, Password: "hash"}
	assert.Error(t, user.Validate())

	user = &User{ID: 1, Username: "alice"}
	assert.Error(t, user.Validate())
}

func TestUserBeforeCreate(t *testing.T) {
	user := &User{Username: "alice", Password: "hash"}
	user.BeforeCreate()
	assert.False(t, user.LastLogged.IsZero())
}

func TestUserProjectionHidesPassword(t *testing.T) {
	user := &User{
		ID:         1,
		Username:   "alice",
		Password:   "super-secret-hash",
		LastLogged: time.Now(),
	}

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret-hash")

	var projection map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &projection))
	assert.Equal(t, "alice", projection["username"])
	assert.Len(t, projection, 2)
}
