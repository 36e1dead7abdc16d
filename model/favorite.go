package model

import "time"

// FavoriteSong marks a song as a favorite of a user.
type FavoriteSong struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_fav_song;size:64"`
	SongID    int64     `json:"songId" gorm:"uniqueIndex:idx_fav_song"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteAlbum marks an album as a favorite of a user.
type FavoriteAlbum struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_fav_album;size:64"`
	AlbumID   int64     `json:"albumId" gorm:"uniqueIndex:idx_fav_album"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoritePlaylist marks a playlist as a favorite of a user.
type FavoritePlaylist struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"userId" gorm:"uniqueIndex:idx_fav_playlist;size:64"`
	PlaylistID int64     `json:"playlistId" gorm:"uniqueIndex:idx_fav_playlist"`
	CreatedAt  time.Time `json:"createdAt"`
}
