package model

import "time"

// Album represents an album. Songs point at their album through Song.AlbumID;
// the album row holds no back-references.
type Album struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:191;index"`
	Description string    `json:"description,omitempty"`
	Genre       string    `json:"genre" gorm:"size:64;index"`
	SubLevel    int       `json:"subLevel"`
	CoverKey    string    `json:"-"` // object-store key of the cover art
	Blocked     bool      `json:"blocked" gorm:"default:false;index"`
	CreatorID   string    `json:"creatorId" gorm:"size:64;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PageKey implements access.Pageable.
func (a Album) PageKey() int64 { return a.ID }

// AlbumWithSongs is the detail-fetch shape: the album plus the songs the
// caller is allowed to see. Invisible songs are dropped per request at
// serialization time; the association rows are never touched.
type AlbumWithSongs struct {
	Album Album  `json:"album"`
	Songs []Song `json:"songs"`
}

// AlbumPatch carries a partial update. Only non-nil fields are applied.
type AlbumPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	SubLevel    *int    `json:"subLevel"`
}

// Apply copies the fields explicitly present in the patch onto the album.
func (p AlbumPatch) Apply(a *Album) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Genre != nil {
		a.Genre = *p.Genre
	}
	if p.SubLevel != nil {
		a.SubLevel = *p.SubLevel
	}
}
