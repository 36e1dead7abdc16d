package server

import (
	"encoding/json"
	"net/http"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"
)

// ListAlbumCommentsHandler pages an album's comment thread. The album must be
// visible to the caller; comments themselves carry no blocked flag.
func (h *APIHandler) ListAlbumCommentsHandler(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	if _, err := h.albums.GetByID(r.Context(), albumID, role, userID); err != nil {
		respondError(w, err)
		return
	}

	limit, offset, err := h.pageWindow(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.comments.ListByAlbum(r.Context(), albumID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreateAlbumCommentHandler posts a comment or a reply on an album.
func (h *APIHandler) CreateAlbumCommentHandler(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	if _, err := h.albums.GetByID(r.Context(), albumID, role, userID); err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Text     string `json:"text"`
		ParentID *int64 `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	if req.ParentID != nil {
		parent, err := h.comments.GetByID(r.Context(), *req.ParentID)
		if err != nil {
			respondError(w, err)
			return
		}
		if parent.AlbumID != albumID {
			respondError(w, access.ErrNotFound)
			return
		}
	}

	comment := &model.Comment{
		AlbumID:   albumID,
		ParentID:  req.ParentID,
		Commenter: userID,
		Text:      &req.Text,
	}

	if err := h.comments.Create(r.Context(), comment); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("comment posted",
		logger.Int64("albumId", albumID),
		logger.Int64("commentId", comment.ID),
	)
	respondJSON(w, http.StatusCreated, comment)
}

// UpdateCommentHandler edits a comment's text. Commenter only; a tombstoned
// comment cannot be edited back to life.
func (h *APIHandler) UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, _ := requester(r)
	comment, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if comment.Commenter != userID {
		respondError(w, access.ErrForbidden)
		return
	}
	if comment.Text == nil {
		respondError(w, access.ErrNotFound)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	comment.Text = &req.Text
	if err := h.comments.Update(r.Context(), comment); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// DeleteCommentHandler tombstones a comment. Commenter or admin. Replies stay.
func (h *APIHandler) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	comment, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if comment.Commenter != userID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.comments.Tombstone(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("comment tombstoned", logger.Int64("commentId", id))
	w.WriteHeader(http.StatusNoContent)
}
