package model

import "time"

// User represents an account. The ID is the opaque uid assigned by the
// identity layer, not an auto-increment key.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:64"`
	Name         string     `json:"name" gorm:"size:191"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:191"`
	PasswordHash string     `json:"-"`
	Location     string     `json:"location,omitempty"`
	Interests    string     `json:"interests,omitempty"`
	AvatarKey    string     `json:"-"` // object-store key of the profile picture
	SubLevel     int        `json:"subLevel"`
	SubExpires   *time.Time `json:"subExpires,omitempty"`
	Wallet       string     `json:"wallet,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserPatch carries a partial update. Only non-nil fields are applied.
type UserPatch struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Interests *string `json:"interests"`
	Wallet    *string `json:"wallet"`
}

// Apply copies the fields explicitly present in the patch onto the user.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Interests != nil {
		u.Interests = *p.Interests
	}
	if p.Wallet != nil {
		u.Wallet = *p.Wallet
	}
}
