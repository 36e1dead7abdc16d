package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return gdb, mock
}

func songRows(id int64, creator string, blocked bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "creator_id", "blocked"}).
		AddRow(id, "song", creator, blocked)
}

func TestSongGetByIDVisibility(t *testing.T) {
	tests := []struct {
		name      string
		blocked   bool
		role      access.Role
		requester string
		wantErr   error
	}{
		{name: "unblocked for listener", role: access.Listener, requester: "other"},
		{name: "blocked hidden from listener", blocked: true, role: access.Listener, requester: "other", wantErr: access.ErrNotFound},
		{name: "blocked visible to owner", blocked: true, role: access.Listener, requester: "creator-1"},
		{name: "blocked visible to admin", blocked: true, role: access.Admin, requester: "other"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			gdb, mock := mockDB(t)
			repo := NewSongRepository(gdb)

			mock.ExpectQuery("SELECT \\* FROM `songs` WHERE `songs`.`id` = \\?").
				WillReturnRows(songRows(7, "creator-1", tc.blocked))

			song, err := repo.GetByID(context.Background(), 7, tc.role, tc.requester)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("GetByID error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if song.ID != 7 {
				t.Fatalf("song.ID = %d, want 7", song.ID)
			}
		})
	}
}

func TestSongGetByIDMissing(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewSongRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `songs`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99, access.Admin, "any")
	if !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestSongListAppliesVisibilityScope(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewSongRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `songs` WHERE \\(blocked = \\? OR creator_id = \\?\\)").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `songs` WHERE \\(blocked = \\? OR creator_id = \\?\\) ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "creator_id", "blocked"}).
			AddRow(1, "a", "u1", false).
			AddRow(3, "c", "u1", true))

	page, err := repo.List(context.Background(), ListParams{
		Role:        access.Listener,
		RequesterID: "u1",
		Limit:       10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("got total=%d items=%d, want 2/2", page.Total, len(page.Items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSongListAdminUnrestricted(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewSongRepository(gdb)

	// No blocked/creator predicate at all for admins.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `songs`$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `songs` ORDER BY id ASC").
		WillReturnRows(songRows(2, "u1", true))

	page, err := repo.List(context.Background(), ListParams{
		Role:        access.Admin,
		RequesterID: "admin-1",
		Limit:       10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 || !page.Items[0].Blocked {
		t.Fatalf("admin listing must include blocked rows, got %+v", page.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSongSetBlocked(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewSongRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `songs` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SetBlocked(context.Background(), 7, true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
}

func TestSongSetBlockedMissing(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewSongRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `songs` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.SetBlocked(context.Background(), 99, true); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("SetBlocked error = %v, want ErrNotFound", err)
	}
}

func TestSongDeleteMissing(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewSongRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `songs`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 99); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("Delete error = %v, want ErrNotFound", err)
	}
}
