package model

import "time"

// Comment is a comment on an album. Replies reference their parent comment by
// id. Deleting a comment tombstones its text so replies keep their anchor.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AlbumID   int64     `json:"albumId" gorm:"index"`
	ParentID  *int64    `json:"parentId,omitempty" gorm:"index"`
	Commenter string    `json:"commenter" gorm:"size:64;index"`
	Text      *string   `json:"text"` // nil = deleted (tombstone)
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageKey implements access.Pageable.
func (c Comment) PageKey() int64 { return c.ID }
