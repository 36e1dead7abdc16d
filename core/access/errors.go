package access

import "errors"

// Terminal, locally-detected conditions. They are surfaced to the client as-is
// and never retried.
var (
	// ErrInvalidRole is returned for an unknown, non-empty role name.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidPageSize is returned for a non-positive page limit.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrForbidden is returned when a capability check fails for a mutating action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a resource is absent or not visible to the
	// caller. The two cases are deliberately indistinguishable so blocked
	// content does not leak its existence.
	ErrNotFound = errors.New("not found")
)
