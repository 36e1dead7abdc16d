package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserGetByIDMissing(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestUserSetSubscription(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expires := time.Now().Add(30 * 24 * time.Hour)
	if err := repo.SetSubscription(context.Background(), "u1", 2, &expires); err != nil {
		t.Fatalf("SetSubscription: %v", err)
	}
}

func TestUserSetSubscriptionMissing(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SetSubscription(context.Background(), "nope", 2, nil)
	if !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("SetSubscription error = %v, want ErrNotFound", err)
	}
}

func TestUserSweepExpired(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.SweepExpired(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if n != 3 {
		t.Fatalf("SweepExpired reverted %d, want 3", n)
	}
}
