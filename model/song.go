package model

import "time"

// Song represents a song in the catalog. The audio itself lives in object
// storage under FileKey; the row only carries metadata.
type Song struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:191;index"`
	Description string    `json:"description,omitempty"`
	Artists     string    `json:"artists" gorm:"size:191"`
	Genre       string    `json:"genre" gorm:"size:64;index"`
	SubLevel    int       `json:"subLevel"` // minimum subscription level to play
	AlbumID     *int64    `json:"albumId,omitempty" gorm:"index"`
	Blocked     bool      `json:"blocked" gorm:"default:false;index"`
	CreatorID   string    `json:"creatorId" gorm:"size:64;index"`
	FileKey     string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PageKey implements access.Pageable.
func (s Song) PageKey() int64 { return s.ID }

// SongPatch carries a partial update. Only non-nil fields are applied.
type SongPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Artists     *string `json:"artists"`
	Genre       *string `json:"genre"`
	SubLevel    *int    `json:"subLevel"`
	AlbumID     *int64  `json:"albumId"`
}

// Apply copies the fields explicitly present in the patch onto the song.
func (p SongPatch) Apply(s *Song) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Artists != nil {
		s.Artists = *p.Artists
	}
	if p.Genre != nil {
		s.Genre = *p.Genre
	}
	if p.SubLevel != nil {
		s.SubLevel = *p.SubLevel
	}
	if p.AlbumID != nil {
		s.AlbumID = p.AlbumID
	}
}
