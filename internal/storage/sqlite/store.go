package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/filmdesk/internal/models"
	"github.com/hongminglow/filmdesk/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const driverName = "sqlite"

const (
	insertUserSQL = `INSERT INTO users (username, name, email, balance, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectUserSQL = `SELECT id, username, name, email, balance, password_hash, created_at FROM users`
	listFilmsSQL  = `SELECT id, title, director, year, created_at FROM films
		WHERE ? = '' OR instr(lower(title), lower(?)) > 0
		ORDER BY title COLLATE NOCASE, id`
	insertFilmSQL = `INSERT INTO films (id, title, director, year, created_at) VALUES (?, ?, ?, ?, ?)`
	deleteFilmSQL = `DELETE FROM films WHERE id = ?`
)

// Store provides SQLite-backed persistence for users and films.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an already opened database. Migrations are not applied.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open opens or creates the database file at path, applies pragmas and
// migrations and verifies the connection.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return New(db), nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	user.CreatedAt = s.now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx, insertUserSQL,
		user.Username, user.Name, user.Email, user.Balance, user.PasswordHash, user.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("get last insert id: %w", err)
	}
	user.ID = id
	return user, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, selectUserSQL+` WHERE username = ?`, username)
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	return s.findUser(ctx, selectUserSQL+` WHERE id = ?`, id)
}

func (s *Store) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	var (
		user      models.User
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.Balance, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

// ListFilms returns films ordered by title, optionally filtered by a title substring.
func (s *Store) ListFilms(ctx context.Context, q string) ([]models.Film, error) {
	rows, err := s.db.QueryContext(ctx, listFilmsSQL, q, q)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()

	films := make([]models.Film, 0)
	for rows.Next() {
		var (
			f         models.Film
			createdAt int64
		)
		if err := rows.Scan(&f.ID, &f.Title, &f.Director, &f.Year, &createdAt); err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		f.CreatedAt = time.Unix(createdAt, 0).UTC()
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}
	return films, nil
}

// CreateFilm inserts a film, assigning a fresh id when none is set.
func (s *Store) CreateFilm(ctx context.Context, film models.Film) (models.Film, error) {
	if film.ID == "" {
		film.ID = uuid.NewString()
	}
	film.CreatedAt = s.now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx, insertFilmSQL, film.ID, film.Title, film.Director, film.Year, film.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return models.Film{}, storage.ErrAlreadyExists
		}
		return models.Film{}, fmt.Errorf("insert film: %w", err)
	}
	return film, nil
}

// DeleteFilm removes a film by id.
func (s *Store) DeleteFilm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, deleteFilmSQL, id)
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
