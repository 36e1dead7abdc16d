package server

import (
	"encoding/json"
	"net/http"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
)

// Favorites always operate on the caller's own lists. Listings join into the
// resource tables and apply the visibility scope, so favoriting something
// that later gets blocked hides it without touching the favorite row.

// ListFavoriteSongsHandler pages the caller's favorite songs.
func (h *APIHandler) ListFavoriteSongsHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	limit, offset, err := h.pageWindow(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.favorites.ListSongs(r.Context(), userID, role, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// AddFavoriteSongHandler favorites a song the caller can see.
func (h *APIHandler) AddFavoriteSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)

	var req struct {
		SongID int64 `json:"songId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.songs.GetByID(r.Context(), req.SongID, role, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.favorites.AddSong(r.Context(), userID, req.SongID); err != nil {
		respondError(w, err)
		return
	}

	logger.Debug("song favorited",
		logger.String("userId", userID),
		logger.Int64("songId", req.SongID),
	)
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavoriteSongHandler unfavorites a song.
func (h *APIHandler) RemoveFavoriteSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := requester(r)
	songID, err := pathID(r, "song_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.favorites.RemoveSong(r.Context(), userID, songID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFavoriteAlbumsHandler pages the caller's favorite albums.
func (h *APIHandler) ListFavoriteAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	limit, offset, err := h.pageWindow(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.favorites.ListAlbums(r.Context(), userID, role, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// AddFavoriteAlbumHandler favorites an album the caller can see.
func (h *APIHandler) AddFavoriteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)

	var req struct {
		AlbumID int64 `json:"albumId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.albums.GetByID(r.Context(), req.AlbumID, role, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.favorites.AddAlbum(r.Context(), userID, req.AlbumID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavoriteAlbumHandler unfavorites an album.
func (h *APIHandler) RemoveFavoriteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := requester(r)
	albumID, err := pathID(r, "album_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.favorites.RemoveAlbum(r.Context(), userID, albumID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFavoritePlaylistsHandler pages the caller's favorite playlists.
func (h *APIHandler) ListFavoritePlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	limit, offset, err := h.pageWindow(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.favorites.ListPlaylists(r.Context(), userID, role, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// AddFavoritePlaylistHandler favorites a playlist the caller can see.
func (h *APIHandler) AddFavoritePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)

	var req struct {
		PlaylistID int64 `json:"playlistId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.playlists.GetByID(r.Context(), req.PlaylistID, role, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.favorites.AddPlaylist(r.Context(), userID, req.PlaylistID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavoritePlaylistHandler unfavorites a playlist.
func (h *APIHandler) RemoveFavoritePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := requester(r)
	playlistID, err := pathID(r, "playlist_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.favorites.RemovePlaylist(r.Context(), userID, playlistID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
