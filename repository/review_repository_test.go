package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReviewCreateDuplicate(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewReviewRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reviews` WHERE album_id = \\? AND reviewer = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	score := 4
	err := repo.Create(context.Background(), &model.Review{
		AlbumID:  1,
		Reviewer: "u1",
		Score:    &score,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Create error = %v, want ErrDuplicate", err)
	}
}

func TestReviewCreateFirst(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewReviewRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reviews`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `reviews`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	score := 5
	review := &model.Review{AlbumID: 1, Reviewer: "u1", Score: &score}
	if err := repo.Create(context.Background(), review); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
