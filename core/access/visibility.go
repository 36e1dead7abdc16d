package access

import (
	"strings"

	"gorm.io/gorm"
)

// Visible reports whether a single resource instance may be observed by the
// given (role, requester) pair. Owners always see their own blocked content.
func Visible(blocked bool, creatorID string, role Role, requesterID string) bool {
	if role.CanSeeBlocked() {
		return true
	}
	if !blocked {
		return true
	}
	return creatorID != "" && creatorID == requesterID
}

// Scope returns a GORM scope restricting a listing to rows visible to the
// given (role, requester) pair. Visibility is applied at read time only;
// nothing here ever mutates rows or associations.
func Scope(role Role, requesterID string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if role.CanSeeBlocked() {
			return q
		}
		if requesterID == "" {
			return q.Where("blocked = ?", false)
		}
		return q.Where("blocked = ? OR creator_id = ?", false, requesterID)
	}
}

// Search returns a scope matching a case-insensitive substring of term against
// any of the given columns. It composes conjunctively with Scope. An empty
// term matches everything.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return q
		}

		needle := "%" + strings.ToLower(term) + "%"
		var (
			clauses []string
			args    []interface{}
		)
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, needle)
		}
		return q.Where(strings.Join(clauses, " OR "), args...)
	}
}
