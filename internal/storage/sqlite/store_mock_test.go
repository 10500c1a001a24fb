package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/filmdesk/internal/models"
	"github.com/hongminglow/filmdesk/internal/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return New(db), mock
}

func TestStore_CreateUser_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantIs     error
		wantText   string
	}{
		{
			name: "unique violation",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"))
			},
			wantIs: storage.ErrAlreadyExists,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WillReturnError(errors.New("disk I/O error"))
			},
			wantText: "insert user",
		},
		{
			name: "last insert id error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			wantText: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.mockExpect(mock)

			_, err := store.CreateUser(context.Background(), models.User{Username: "neo", Email: "neo@matrix.io", PasswordHash: "h"})
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantText != "" {
				assert.ErrorContains(t, err, tt.wantText)
			}
		})
	}
}

func TestStore_FindByID_Errors(t *testing.T) {
	store, mock := newMockStore(t)
	query := regexp.QuoteMeta(selectUserSQL + ` WHERE id = ?`)

	mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)
	_, err := store.FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	mock.ExpectQuery(query).WithArgs(int64(8)).WillReturnError(errors.New("boom"))
	_, err = store.FindByID(context.Background(), 8)
	assert.ErrorContains(t, err, "select user")
}

func TestStore_ListFilms_Errors(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(listFilmsSQL)).WithArgs("x", "x").WillReturnError(errors.New("boom"))
	_, err := store.ListFilms(context.Background(), "x")
	assert.ErrorContains(t, err, "list films")

	rows := sqlmock.NewRows([]string{"id", "title", "director", "year", "created_at"}).
		AddRow("1", "Alien", "", 1979, int64(0)).
		RowError(0, errors.New("corrupt page"))
	mock.ExpectQuery(regexp.QuoteMeta(listFilmsSQL)).WithArgs("", "").WillReturnRows(rows)
	_, err = store.ListFilms(context.Background(), "")
	assert.ErrorContains(t, err, "iterate films")
}

func TestStore_DeleteFilm_Errors(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteFilmSQL)).WithArgs("42").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.DeleteFilm(context.Background(), "42"), storage.ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta(deleteFilmSQL)).WithArgs("43").WillReturnResult(sqlmock.NewErrorResult(errors.New("nope")))
	assert.ErrorContains(t, store.DeleteFilm(context.Background(), "43"), "rows affected")

	mock.ExpectExec(regexp.QuoteMeta(deleteFilmSQL)).WithArgs("44").WillReturnError(errors.New("locked"))
	assert.ErrorContains(t, store.DeleteFilm(context.Background(), "44"), "delete film")
}
