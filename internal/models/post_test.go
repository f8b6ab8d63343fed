package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_String(t *testing.T) {
	t.Parallel()
	p := &Post{ID: 3, Content: "hello world"}
	assert.Equal(t, "<Post 3: hello world>", p.String())
}

func TestPost_OwnedBy(t *testing.T) {
	t.Parallel()
	owner := uint(5)

	assert.True(t, (&Post{UserID: &owner}).OwnedBy(5))
	assert.False(t, (&Post{UserID: &owner}).OwnedBy(6))
	assert.False(t, (&Post{}).OwnedBy(5), "unattached posts have no owner")
}

func TestAppError(t *testing.T) {
	t.Parallel()
	cause := assert.AnError

	err := NewConflictError("Username already taken", cause)
	assert.Equal(t, CodeConflict, ErrorCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Username already taken")

	assert.Equal(t, CodeNotFound, ErrorCode(NewNotFoundError("Post", 9)))
	assert.Equal(t, "Post with ID 9 not found", NewNotFoundError("Post", 9).Error())
	assert.Equal(t, "User with username alice not found", NewNotFoundByError("User", "username", "alice").Error())
	assert.Equal(t, "", ErrorCode(cause))
}

func TestRecords_JSONLimitedToOwnColumns(t *testing.T) {
	t.Parallel()
	owner := uint(4)
	author := &User{ID: owner, Username: "mallory"}
	require.NoError(t, author.SetPassword("hunter2"))
	post := &Post{ID: 2, Content: "hi", UserID: &owner, User: author}
	author.Posts = []Post{*post}

	raw, err := json.Marshal(post)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"content":"hi"}`, string(raw))

	raw, err = json.Marshal(author)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"username":"mallory"}`, string(raw))
}
