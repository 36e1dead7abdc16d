package server

import (
	"encoding/json"
	"net/http"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"
)

func validScore(score *int) bool {
	return score == nil || (*score >= 1 && *score <= 5)
}

// ListAlbumReviewsHandler pages an album's reviews by review id.
func (h *APIHandler) ListAlbumReviewsHandler(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.reviews.ListByAlbum(r.Context(), albumID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreateAlbumReviewHandler posts a review. One review per (album, reviewer);
// at least one of text and score must be present.
func (h *APIHandler) CreateAlbumReviewHandler(w http.ResponseWriter, r *http.Request) {
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
		Text  *string `json:"text"`
		Score *int    `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == nil && req.Score == nil {
		http.Error(w, "Text or score is required", http.StatusBadRequest)
		return
	}
	if !validScore(req.Score) {
		http.Error(w, "Score must be between 1 and 5", http.StatusBadRequest)
		return
	}

	review := &model.Review{
		AlbumID:  albumID,
		Reviewer: userID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := h.reviews.Create(r.Context(), review); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("review posted",
		logger.Int64("albumId", albumID),
		logger.Int64("reviewId", review.ID),
	)
	respondJSON(w, http.StatusCreated, review)
}

// GetMyAlbumReviewHandler returns the caller's own review of the album.
func (h *APIHandler) GetMyAlbumReviewHandler(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, _ := requester(r)
	review, err := h.reviews.GetByAlbumAndReviewer(r.Context(), albumID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// UpdateReviewHandler patches a review. Reviewer or admin.
func (h *APIHandler) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	review, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if review.Reviewer != userID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	var patch model.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validScore(patch.Score) {
		http.Error(w, "Score must be between 1 and 5", http.StatusBadRequest)
		return
	}

	patch.Apply(review)
	if err := h.reviews.Update(r.Context(), review); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// DeleteReviewHandler removes a review. Reviewer or admin.
func (h *APIHandler) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	review, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if review.Reviewer != userID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("review deleted", logger.Int64("reviewId", id))
	w.WriteHeader(http.StatusNoContent)
}
