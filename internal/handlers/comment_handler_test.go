package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentAPI(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.login("alice")
	b.postForm("/feed", url.Values{"content": {"post"}})
	var post models.Post
	require.NoError(t, app.db.First(&post).Error)
	path := fmt.Sprintf("/comment_api/%d", post.ID)

	rec := b.postForm(path, url.Values{"comment_content": {"   "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Comment is empty"}`, rec.Body.String())

	rec = b.postForm(path, url.Values{"comment_content": {words(51)}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Comment must be <= 50 words"}`, rec.Body.String())

	rec = b.postForm("/comment_api/9999", url.Values{"comment_content": {"hi"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, rec.Body.String())

	rec = b.postForm(path, url.Values{"comment_content": {"nice bad post"}})
	require.Equal(t, http.StatusOK, rec.Code)
	comment, ok := decodeJSON(t, rec)["comment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "nice **** post", comment["content"])
	assert.Equal(t, "alice", comment["username"])
	assert.EqualValues(t, post.ID, comment["post_id"])
	assert.Equal(t, "", comment["profile_picture"])
	assert.NotEmpty(t, comment["created_at"])

	assert.Contains(t, b.get("/feed").Body.String(), "nice **** post")
}

func TestDeleteComment(t *testing.T) {
	app := newTestApp(t)
	alice := app.browser(t)
	alice.login("alice")
	alice.postForm("/feed", url.Values{"content": {"post"}})
	var post models.Post
	require.NoError(t, app.db.First(&post).Error)
	alice.postForm(fmt.Sprintf("/comment_api/%d", post.ID), url.Values{"comment_content": {"mine"}})
	var comment models.Comment
	require.NoError(t, app.db.First(&comment).Error)
	path := fmt.Sprintf("/delete_comment/%d", comment.ID)

	bob := app.browser(t)
	bob.login("bob")
	bob.do(http.MethodPost, path, nil, "")
	assert.Equal(t, []string{"Cannot delete others' comment!"}, bob.flashes())

	alice.do(http.MethodPost, path, nil, "")
	assert.Equal(t, []string{"Comment deleted!"}, alice.flashes())

	alice.do(http.MethodPost, path, nil, "")
	assert.Equal(t, []string{"Comment not found!"}, alice.flashes())

	var n int64
	app.db.Model(&models.Comment{}).Count(&n)
	assert.Zero(t, n)
}
