package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/filmdesk/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
}

// FilmStore captures film persistence operations needed by handlers.
type FilmStore interface {
	// ListFilms returns films ordered by title. A non-empty query keeps only
	// films whose title contains it, ignoring case.
	ListFilms(ctx context.Context, query string) ([]models.Film, error)
	CreateFilm(ctx context.Context, film models.Film) (models.Film, error)
	// DeleteFilm removes a film and returns ErrNotFound when id is unknown.
	DeleteFilm(ctx context.Context, id string) error
}

// Store is the full persistence surface of the server.
type Store interface {
	UserStore
	FilmStore
	Ping(ctx context.Context) error
	Close() error
}
