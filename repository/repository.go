// Package repository holds the data access layer. Each entity gets an
// interface plus a GORM implementation; gorm.ErrRecordNotFound is mapped to
// access.ErrNotFound at this boundary so the handlers only ever see the
// policy-layer error taxonomy.
package repository

import (
	"errors"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"

	"gorm.io/gorm"
)

// ListParams are the common knobs of every visibility-filtered listing.
type ListParams struct {
	Role        access.Role
	RequesterID string
	Query       string // case-insensitive substring search, empty = no filter
	CreatorID   string // restrict to one creator, empty = all
	Limit       int
	Offset      *int64 // cursor: key of the last item of the previous page
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return access.ErrNotFound
	}
	return err
}
