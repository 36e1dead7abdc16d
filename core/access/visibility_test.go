package access

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name      string
		blocked   bool
		creator   string
		role      Role
		requester string
		want      bool
	}{
		{name: "unblocked visible to listener", creator: "u1", role: Listener, requester: "u2", want: true},
		{name: "unblocked visible to anonymous", creator: "u1", role: Listener, requester: "", want: true},
		{name: "blocked hidden from listener", blocked: true, creator: "u1", role: Listener, requester: "u2", want: false},
		{name: "blocked hidden from artist", blocked: true, creator: "u1", role: Artist, requester: "u2", want: false},
		{name: "blocked visible to admin", blocked: true, creator: "u1", role: Admin, requester: "u2", want: true},
		{name: "owner sees own blocked", blocked: true, creator: "u1", role: Listener, requester: "u1", want: true},
		{name: "artist owner sees own blocked", blocked: true, creator: "u1", role: Artist, requester: "u1", want: true},
		{name: "empty creator never matches empty requester", blocked: true, creator: "", role: Listener, requester: "", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Visible(tc.blocked, tc.creator, tc.role, tc.requester)
			if got != tc.want {
				t.Fatalf("Visible(%v, %q, %v, %q) = %v, want %v",
					tc.blocked, tc.creator, tc.role, tc.requester, got, tc.want)
			}
		})
	}
}

// dryRunDB returns a gorm handle that builds SQL without executing it.
func dryRunDB(t *testing.T) (*gorm.DB, *sql.DB) {
	t.Helper()

	conn, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return gdb, conn
}

func TestScopeSQL(t *testing.T) {
	tests := []struct {
		name      string
		role      Role
		requester string
		wantSQL   string
		wantNoSQL string
	}{
		{
			name:      "admin is unrestricted",
			role:      Admin,
			requester: "u1",
			wantNoSQL: "blocked",
		},
		{
			name:      "listener filters blocked with owner escape",
			role:      Listener,
			requester: "u1",
			wantSQL:   "blocked = ? OR creator_id = ?",
		},
		{
			name:    "anonymous filters blocked only",
			role:    Listener,
			wantSQL: "blocked = ?",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			gdb, conn := dryRunDB(t)
			defer conn.Close()

			var out []map[string]interface{}
			stmt := gdb.Table("songs").Scopes(Scope(tc.role, tc.requester)).Find(&out).Statement

			if tc.wantSQL != "" && !strings.Contains(stmt.SQL.String(), tc.wantSQL) {
				t.Fatalf("SQL %q does not contain %q", stmt.SQL.String(), tc.wantSQL)
			}
			if tc.wantNoSQL != "" && strings.Contains(stmt.SQL.String(), tc.wantNoSQL) {
				t.Fatalf("SQL %q must not contain %q", stmt.SQL.String(), tc.wantNoSQL)
			}
		})
	}
}

func TestSearchSQL(t *testing.T) {
	gdb, conn := dryRunDB(t)
	defer conn.Close()

	var out []map[string]interface{}
	stmt := gdb.Table("songs").Scopes(Search("Queen", "name", "artists")).Find(&out).Statement

	built := stmt.SQL.String()
	if !strings.Contains(built, "LOWER(name) LIKE ?") || !strings.Contains(built, "LOWER(artists) LIKE ?") {
		t.Fatalf("SQL %q must match both columns", built)
	}

	found := false
	for _, v := range stmt.Vars {
		if v == "%queen%" {
			found = true
		}
	}
	if !found {
		t.Fatalf("vars %v must carry the lowercased needle", stmt.Vars)
	}
}

func TestSearchEmptyTermIsNoop(t *testing.T) {
	gdb, conn := dryRunDB(t)
	defer conn.Close()

	var out []map[string]interface{}
	stmt := gdb.Table("songs").Scopes(Search("", "name")).Find(&out).Statement

	if strings.Contains(stmt.SQL.String(), "LIKE") {
		t.Fatalf("empty term must not restrict the query, got %q", stmt.SQL.String())
	}
}
