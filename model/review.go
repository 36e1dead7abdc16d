package model

import "time"

// Review is a scored review of an album. A reviewer gets one review per album;
// at least one of Text and Score must be present.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AlbumID   int64     `json:"albumId" gorm:"uniqueIndex:idx_album_reviewer;index"`
	Reviewer  string    `json:"reviewer" gorm:"uniqueIndex:idx_album_reviewer;size:64"`
	Text      *string   `json:"text,omitempty"`
	Score     *int      `json:"score,omitempty"` // 1..5
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageKey implements access.Pageable.
func (r Review) PageKey() int64 { return r.ID }

// ReviewPatch carries a partial update. Only non-nil fields are applied.
type ReviewPatch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// Apply copies the fields explicitly present in the patch onto the review.
func (p ReviewPatch) Apply(r *Review) {
	if p.Text != nil {
		r.Text = p.Text
	}
	if p.Score != nil {
		r.Score = p.Score
	}
}
