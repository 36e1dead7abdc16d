package server

import (
	"encoding/json"
	"net/http"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"
)

// CreateAlbumRequest is the album creation body.
type CreateAlbumRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	SubLevel    int    `json:"subLevel"`
	SongIDs     []int64 `json:"songIds"`
}

// ListAlbumsHandler lists albums visible to the caller.
func (h *APIHandler) ListAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.listParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.albums.List(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreateAlbumHandler creates an album and optionally claims existing songs of
// the same creator into it.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	if !role.CanPostContent() {
		respondError(w, access.ErrForbidden)
		return
	}

	var req CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	album := &model.Album{
		Name:        req.Name,
		Description: req.Description,
		Genre:       req.Genre,
		SubLevel:    req.SubLevel,
		CreatorID:   userID,
	}

	if err := h.albums.Create(r.Context(), album); err != nil {
		respondError(w, err)
		return
	}

	for _, songID := range req.SongIDs {
		song, err := h.songs.GetByID(r.Context(), songID, role, userID)
		if err != nil {
			respondError(w, err)
			return
		}
		if song.CreatorID != userID && !role.CanEditEverything() {
			respondError(w, access.ErrForbidden)
			return
		}
		song.AlbumID = &album.ID
		if err := h.songs.Update(r.Context(), song); err != nil {
			respondError(w, err)
			return
		}
	}

	logger.Info("album created",
		logger.Int64("albumId", album.ID),
		logger.String("creator", userID),
	)
	respondJSON(w, http.StatusCreated, album)
}

// GetAlbumHandler fetches one album with the songs the caller may see. A
// blocked song is only dropped from this response; the album keeps the full
// association for callers who are allowed to see it.
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	album, err := h.albums.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	songs, err := h.songs.ListByAlbum(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	visible := make([]model.Song, 0, len(songs))
	for _, song := range songs {
		if access.Visible(song.Blocked, song.CreatorID, role, userID) {
			visible = append(visible, song)
		}
	}

	respondJSON(w, http.StatusOK, model.AlbumWithSongs{Album: *album, Songs: visible})
}

// UpdateAlbumHandler patches an album. Owner or admin.
func (h *APIHandler) UpdateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	album, err := h.albums.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if album.CreatorID != userID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	var patch model.AlbumPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patch.Apply(album)
	if err := h.albums.Update(r.Context(), album); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("album updated", logger.Int64("albumId", id))
	respondJSON(w, http.StatusOK, album)
}

// BlockAlbumHandler flips the blocked flag. Admin only.
func (h *APIHandler) BlockAlbumHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := h.albums.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("album block flag set",
		logger.Int64("albumId", id),
		logger.Bool("blocked", req.Blocked),
	)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAlbumHandler deletes an album. Owner or admin. Member songs survive
// as singles.
func (h *APIHandler) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	album, err := h.albums.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if album.CreatorID != userID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.albums.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("album deleted", logger.Int64("albumId", id))
	w.WriteHeader(http.StatusNoContent)
}

// AlbumCoverURLHandler hands out presigned URLs for the album cover: GET to
// download, PUT (owner or admin) to upload.
func (h *APIHandler) AlbumCoverURLHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	album, err := h.albums.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	key := album.CoverKey
	if key == "" {
		key = albumCoverKey(album.ID)
	}

	if r.Method == http.MethodPut {
		if album.CreatorID != userID && !role.CanEditEverything() {
			respondError(w, access.ErrForbidden)
			return
		}

		url, err := storagePutURL(r, key)
		if err != nil {
			respondError(w, err)
			return
		}

		if album.CoverKey != key {
			album.CoverKey = key
			if err := h.albums.Update(r.Context(), album); err != nil {
				respondError(w, err)
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})
		return
	}

	url, err := storageGetURL(r, key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"downloadUrl": url})
}
