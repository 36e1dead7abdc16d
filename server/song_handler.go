package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"
)

// CreateSongRequest is the song creation body.
type CreateSongRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Artists     string `json:"artists"`
	Genre       string `json:"genre"`
	SubLevel    int    `json:"subLevel"`
	AlbumID     *int64 `json:"albumId"`
}

// ListSongsHandler lists songs visible to the caller, with optional search
// and creator filters, cursor-paginated by id.
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.listParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.songs.List(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreateSongHandler creates a song. Requires content-posting capability.
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	if !role.CanPostContent() {
		respondError(w, access.ErrForbidden)
		return
	}

	var req CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	song := &model.Song{
		Name:        req.Name,
		Description: req.Description,
		Artists:     req.Artists,
		Genre:       req.Genre,
		SubLevel:    req.SubLevel,
		AlbumID:     req.AlbumID,
		CreatorID:   userID,
	}

	if err := h.songs.Create(r.Context(), song); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("song created",
		logger.Int64("songId", song.ID),
		logger.String("creator", userID),
	)
	respondJSON(w, http.StatusCreated, song)
}

// GetSongHandler fetches one song if it is visible to the caller.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	song, err := h.songs.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, song)
}

// UpdateSongHandler patches a song. Owner or admin.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	song, err := h.songs.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if song.CreatorID != userID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	var patch model.SongPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patch.Apply(song)
	if err := h.songs.Update(r.Context(), song); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("song updated", logger.Int64("songId", id))
	respondJSON(w, http.StatusOK, song)
}

// BlockSongHandler flips the blocked flag. Admin only, even for the owner.
func (h *APIHandler) BlockSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	_, role := requester(r)
	if !role.CanBlock() {
		respondError(w, access.ErrForbidden)
		return
	}

	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.songs.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("song block flag set",
		logger.Int64("songId", id),
		logger.Bool("blocked", req.Blocked),
	)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSongHandler deletes a song. Owner or admin.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	song, err := h.songs.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if song.CreatorID != userID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.songs.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("song deleted", logger.Int64("songId", id))
	w.WriteHeader(http.StatusNoContent)
}

// SongFileURLHandler hands out presigned URLs for the song's audio object:
// GET returns a download URL gated on the caller's subscription level, PUT
// returns an upload URL for the owner.
func (h *APIHandler) SongFileURLHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	song, err := h.songs.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	key := song.FileKey
	if key == "" {
		key = songFileKey(song.ID)
	}

	switch r.Method {
	case http.MethodPut:
		if song.CreatorID != userID && !role.CanEditEverything() {
			respondError(w, access.ErrForbidden)
			return
		}

		url, err := storagePutURL(r, key)
		if err != nil {
			respondError(w, err)
			return
		}

		if song.FileKey != key {
			song.FileKey = key
			if err := h.songs.Update(r.Context(), song); err != nil {
				respondError(w, err)
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})

	default: // GET
		// Metadata is public; the audio itself is gated on subscription level.
		if song.SubLevel > 0 && song.CreatorID != userID && !role.CanEditEverything() {
			user, err := h.users.GetByID(r.Context(), userID)
			if err != nil {
				respondError(w, err)
				return
			}
			if user.SubLevel < song.SubLevel {
				respondError(w, access.ErrForbidden)
				return
			}
		}

		url, err := storageGetURL(r, key)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"downloadUrl": url, "expiresIn": storageURLTTL.String()})
	}
}

const storageURLTTL = 1 * time.Hour
