package model

import "time"

// Playlist represents a playlist. Songs and collaborators are related through
// join rows, resolved by id through the repository.
type Playlist struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:191;index"`
	Description string    `json:"description,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false;index"`
	CreatorID   string    `json:"creatorId" gorm:"size:64;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PageKey implements access.Pageable.
func (p Playlist) PageKey() int64 { return p.ID }

// PlaylistSong is one song's membership in a playlist.
type PlaylistSong struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `json:"playlistId" gorm:"uniqueIndex:idx_playlist_song;index"`
	SongID     int64     `json:"songId" gorm:"uniqueIndex:idx_playlist_song"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PlaylistColab is a collaborator: a user who may edit the playlist's songs
// but not delete or block the playlist itself.
type PlaylistColab struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `json:"playlistId" gorm:"uniqueIndex:idx_playlist_colab;index"`
	UserID     string    `json:"userId" gorm:"uniqueIndex:idx_playlist_colab;size:64"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PlaylistWithSongs is the detail-fetch shape with visible songs only.
type PlaylistWithSongs struct {
	Playlist Playlist `json:"playlist"`
	Songs    []Song   `json:"songs"`
	Colabs   []string `json:"colabs"`
}

// PlaylistPatch carries a partial update. Only non-nil fields are applied.
type PlaylistPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Apply copies the fields explicitly present in the patch onto the playlist.
func (p PlaylistPatch) Apply(pl *Playlist) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
}
