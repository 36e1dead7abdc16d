package access

import "fmt"

// Role is the caller's access tier. Roles are totally ordered:
// Listener < Artist < Admin. Comparison is by rank, never by name.
type Role int8

const (
	Listener Role = iota
	Artist
	Admin
)

var roleNames = map[string]Role{
	"listener": Listener,
	"artist":   Artist,
	"admin":    Admin,
}

// ParseRole parses a role name. The empty string means the identity layer sent
// no role and defaults to Listener; any other unknown name is ErrInvalidRole.
func ParseRole(name string) (Role, error) {
	if name == "" {
		return Listener, nil
	}
	role, ok := roleNames[name]
	if !ok {
		return Listener, fmt.Errorf("%w: %q", ErrInvalidRole, name)
	}
	return role, nil
}

func (r Role) String() string {
	switch r {
	case Artist:
		return "artist"
	case Admin:
		return "admin"
	default:
		return "listener"
	}
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}

// CanSeeBlocked reports whether blocked resources appear in listings and
// detail fetches for this role.
func (r Role) CanSeeBlocked() bool {
	return r == Admin
}

// CanBlock reports whether this role may flip a resource's blocked flag.
func (r Role) CanBlock() bool {
	return r == Admin
}

// CanEditEverything reports whether this role overrides ownership on edits.
func (r Role) CanEditEverything() bool {
	return r == Admin
}

// CanDeleteEverything reports whether this role overrides ownership on deletes.
func (r Role) CanDeleteEverything() bool {
	return r == Admin
}

// CanPostContent reports whether this role may create songs and albums.
func (r Role) CanPostContent() bool {
	return r.AtLeast(Artist)
}

// CanStream reports whether this role may open a live streaming session.
func (r Role) CanStream() bool {
	return r.AtLeast(Artist)
}

// CanRevoke reports whether this role may run the batch subscription-expiry sweep.
func (r Role) CanRevoke() bool {
	return r == Admin
}
