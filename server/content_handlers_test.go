package server

import (
	"net/http"
	"testing"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentOnInvisibleAlbumIs404(t *testing.T) {
	env := newTestEnv(t)
	env.albums.byID[1] = &model.Album{ID: 1, Blocked: true, CreatorID: "owner"}

	body := map[string]interface{}{"text": "great record"}
	rr := env.request(t, http.MethodPost, "/api/albums/1/comments", body, "stranger", "listener")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// The owner can still comment on their own blocked album.
	rr = env.request(t, http.MethodPost, "/api/albums/1/comments", body, "owner", "listener")
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateCommentRequiresText(t *testing.T) {
	env := newTestEnv(t)
	env.albums.byID[1] = &model.Album{ID: 1, CreatorID: "owner"}

	rr := env.request(t, http.MethodPost, "/api/albums/1/comments", map[string]string{}, "u1", "listener")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateReplyChecksParentAlbum(t *testing.T) {
	env := newTestEnv(t)
	env.albums.byID[1] = &model.Album{ID: 1, CreatorID: "owner"}
	text := "root"
	env.comments.byID[10] = &model.Comment{ID: 10, AlbumID: 2, Commenter: "u2", Text: &text}

	// Parent belongs to another album; the reply must not attach.
	body := map[string]interface{}{"text": "reply", "parentId": 10}
	rr := env.request(t, http.MethodPost, "/api/albums/1/comments", body, "u1", "listener")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateCommentRules(t *testing.T) {
	env := newTestEnv(t)
	text := "original"
	env.comments.byID[5] = &model.Comment{ID: 5, AlbumID: 1, Commenter: "author", Text: &text}

	body := map[string]string{"text": "edited"}

	// Only the commenter may edit, admins included.
	rr := env.request(t, http.MethodPatch, "/api/comments/5", body, "other", "admin")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.request(t, http.MethodPatch, "/api/comments/5", body, "author", "listener")
	require.Equal(t, http.StatusOK, rr.Code)

	// A tombstoned comment cannot be edited back to life.
	env.comments.byID[5].Text = nil
	rr = env.request(t, http.MethodPatch, "/api/comments/5", body, "author", "listener")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteCommentTombstones(t *testing.T) {
	env := newTestEnv(t)
	text := "to be removed"
	env.comments.byID[5] = &model.Comment{ID: 5, AlbumID: 1, Commenter: "author", Text: &text}

	rr := env.request(t, http.MethodDelete, "/api/comments/5", nil, "stranger", "listener")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.request(t, http.MethodDelete, "/api/comments/5", nil, "stranger", "admin")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []int64{5}, env.comments.tombstoned)
}

func TestCreateReviewOncePerReviewer(t *testing.T) {
	env := newTestEnv(t)
	env.albums.byID[1] = &model.Album{ID: 1, CreatorID: "owner"}

	body := map[string]interface{}{"score": 4}
	rr := env.request(t, http.MethodPost, "/api/albums/1/reviews", body, "u1", "listener")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.request(t, http.MethodPost, "/api/albums/1/reviews", body, "u1", "listener")
	assert.Equal(t, http.StatusConflict, rr.Code)

	// A different reviewer is still free to post.
	rr = env.request(t, http.MethodPost, "/api/albums/1/reviews", body, "u2", "listener")
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	env.albums.byID[1] = &model.Album{ID: 1, CreatorID: "owner"}

	// Neither text nor score.
	rr := env.request(t, http.MethodPost, "/api/albums/1/reviews", map[string]interface{}{}, "u1", "listener")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for _, score := range []int{0, 6} {
		rr = env.request(t, http.MethodPost, "/api/albums/1/reviews", map[string]interface{}{"score": score}, "u1", "listener")
		assert.Equal(t, http.StatusBadRequest, rr.Code, "score %d", score)
	}

	// Text alone is enough.
	rr = env.request(t, http.MethodPost, "/api/albums/1/reviews", map[string]interface{}{"text": "fine"}, "u1", "listener")
	assert.Equal(t, http.StatusCreated, rr.Code)
}
