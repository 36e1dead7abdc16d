package server

import (
	"encoding/json"
	"net/http"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"github.com/gorilla/mux"
)

// CreatePlaylistRequest is the playlist creation body.
type CreatePlaylistRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SongIDs     []int64 `json:"songIds"`
	Colabs      []string `json:"colabs"`
}

// ListPlaylistsHandler lists playlists visible to the caller.
func (h *APIHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.listParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.playlists.List(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreatePlaylistHandler creates a playlist. Any role may create playlists.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)

	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	playlist := &model.Playlist{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
	}

	if err := h.playlists.Create(r.Context(), playlist); err != nil {
		respondError(w, err)
		return
	}

	for _, songID := range req.SongIDs {
		if _, err := h.songs.GetByID(r.Context(), songID, role, userID); err != nil {
			respondError(w, err)
			return
		}
		if err := h.playlists.AddSong(r.Context(), playlist.ID, songID); err != nil {
			respondError(w, err)
			return
		}
	}
	for _, colab := range req.Colabs {
		if err := h.playlists.AddColab(r.Context(), playlist.ID, colab); err != nil {
			respondError(w, err)
			return
		}
	}

	logger.Info("playlist created",
		logger.Int64("playlistId", playlist.ID),
		logger.String("creator", userID),
	)
	respondJSON(w, http.StatusCreated, playlist)
}

// canEditPlaylist reports whether the caller may edit the playlist's songs:
// creator, collaborator, or admin.
func (h *APIHandler) canEditPlaylist(r *http.Request, playlist *model.Playlist) (bool, error) {
	userID, role := requester(r)
	if playlist.CreatorID == userID || role.CanEditEverything() {
		return true, nil
	}
	return h.playlists.IsColab(r.Context(), playlist.ID, userID)
}

// GetPlaylistHandler fetches one playlist with visible songs and the
// collaborator list.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	songs, err := h.playlists.ListSongs(r.Context(), id)
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

	colabs, err := h.playlists.ListColabs(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model.PlaylistWithSongs{
		Playlist: *playlist,
		Songs:    visible,
		Colabs:   colabs,
	})
}

// UpdatePlaylistHandler patches name/description. Creator, colab or admin.
func (h *APIHandler) UpdatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	ok, err := h.canEditPlaylist(r, playlist)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondError(w, access.ErrForbidden)
		return
	}

	var patch model.PlaylistPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patch.Apply(playlist)
	if err := h.playlists.Update(r.Context(), playlist); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("playlist updated", logger.Int64("playlistId", id))
	respondJSON(w, http.StatusOK, playlist)
}

// BlockPlaylistHandler flips the blocked flag. Admin only.
func (h *APIHandler) BlockPlaylistHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := h.playlists.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("playlist block flag set",
		logger.Int64("playlistId", id),
		logger.Bool("blocked", req.Blocked),
	)
	w.WriteHeader(http.StatusNoContent)
}

// DeletePlaylistHandler deletes a playlist. Creator or admin; collaborators
// may edit songs but not delete.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if playlist.CreatorID != userID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.playlists.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("playlist deleted", logger.Int64("playlistId", id))
	w.WriteHeader(http.StatusNoContent)
}

// AddPlaylistSongHandler appends a song. Creator, colab or admin.
func (h *APIHandler) AddPlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	ok, err := h.canEditPlaylist(r, playlist)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondError(w, access.ErrForbidden)
		return
	}

	var req struct {
		SongID int64 `json:"songId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The song must be visible to whoever adds it.
	if _, err := h.songs.GetByID(r.Context(), req.SongID, role, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.playlists.AddSong(r.Context(), id, req.SongID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemovePlaylistSongHandler removes a song. Creator, colab or admin.
func (h *APIHandler) RemovePlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	songID, err := pathID(r, "song_id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	ok, err := h.canEditPlaylist(r, playlist)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.playlists.RemoveSong(r.Context(), id, songID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPlaylistColabHandler adds a collaborator. Creator or admin only.
func (h *APIHandler) AddPlaylistColabHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if playlist.CreatorID != userID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The collaborator must exist.
	if _, err := h.users.GetByID(r.Context(), req.UserID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.playlists.AddColab(r.Context(), id, req.UserID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemovePlaylistColabHandler removes a collaborator. Creator or admin, or the
// collaborator removing themselves.
func (h *APIHandler) RemovePlaylistColabHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	colabID := mux.Vars(r)["user_id"]

	userID, role := requester(r)
	playlist, err := h.playlists.GetByID(r.Context(), id, role, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if playlist.CreatorID != userID && colabID != userID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.playlists.RemoveColab(r.Context(), id, colabID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
