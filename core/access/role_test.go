package access

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Role
		wantErr bool
	}{
		{name: "empty defaults to listener", in: "", want: Listener},
		{name: "listener", in: "listener", want: Listener},
		{name: "artist", in: "artist", want: Artist},
		{name: "admin", in: "admin", want: Admin},
		{name: "unknown name", in: "superuser", wantErr: true},
		{name: "case sensitive", in: "Admin", wantErr: true},
		{name: "whitespace is not trimmed", in: " admin", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRole(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRole) {
					t.Fatalf("ParseRole(%q) error = %v, want ErrInvalidRole", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoleOrdering(t *testing.T) {
	if !(Listener < Artist && Artist < Admin) {
		t.Fatal("roles must be ordered Listener < Artist < Admin")
	}

	if !Admin.AtLeast(Artist) || !Artist.AtLeast(Listener) || !Listener.AtLeast(Listener) {
		t.Fatal("AtLeast must be reflexive and follow rank order")
	}
	if Listener.AtLeast(Artist) || Artist.AtLeast(Admin) {
		t.Fatal("AtLeast must not grant higher ranks")
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role       Role
		seeBlocked bool
		block      bool
		post       bool
		stream     bool
		revoke     bool
	}{
		{role: Listener},
		{role: Artist, post: true, stream: true},
		{role: Admin, seeBlocked: true, block: true, post: true, stream: true, revoke: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.role.String(), func(t *testing.T) {
			if got := tc.role.CanSeeBlocked(); got != tc.seeBlocked {
				t.Errorf("CanSeeBlocked() = %v, want %v", got, tc.seeBlocked)
			}
			if got := tc.role.CanBlock(); got != tc.block {
				t.Errorf("CanBlock() = %v, want %v", got, tc.block)
			}
			if got := tc.role.CanPostContent(); got != tc.post {
				t.Errorf("CanPostContent() = %v, want %v", got, tc.post)
			}
			if got := tc.role.CanStream(); got != tc.stream {
				t.Errorf("CanStream() = %v, want %v", got, tc.stream)
			}
			if got := tc.role.CanRevoke(); got != tc.revoke {
				t.Errorf("CanRevoke() = %v, want %v", got, tc.revoke)
			}
			// Edit and delete overrides always travel together.
			if tc.role.CanEditEverything() != tc.role.CanDeleteEverything() {
				t.Error("edit and delete overrides must agree")
			}
			if tc.role.CanEditEverything() != (tc.role == Admin) {
				t.Errorf("CanEditEverything() = %v for %v", tc.role.CanEditEverything(), tc.role)
			}
		})
	}
}

func TestRoleString(t *testing.T) {
	for _, role := range []Role{Listener, Artist, Admin} {
		parsed, err := ParseRole(role.String())
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", role.String(), err)
		}
		if parsed != role {
			t.Fatalf("ParseRole(%q) = %v, want %v", role.String(), parsed, role)
		}
	}
	if Role(42).String() != "listener" {
		t.Fatal("out of range roles must render as listener")
	}
}
