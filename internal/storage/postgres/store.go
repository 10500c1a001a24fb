package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hongminglow/filmdesk/internal/models"
	"github.com/hongminglow/filmdesk/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users and films.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			email TEXT UNIQUE NOT NULL,
			balance NUMERIC(24,2) NOT NULL DEFAULT 0,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS name TEXT NOT NULL DEFAULT '';`,
		`CREATE TABLE IF NOT EXISTS films (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			director TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS films_title_idx ON films (lower(title));`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, name, email, balance, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, name, email, balance::float8, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Username, user.Name, user.Email, user.Balance, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
	SELECT id, username, name, email, balance::float8, password_hash, created_at
	FROM users
	WHERE username = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
	SELECT id, username, name, email, balance::float8, password_hash, created_at
	FROM users
	WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// ListFilms returns films ordered by title, optionally filtered by a title substring.
func (s *Store) ListFilms(ctx context.Context, q string) ([]models.Film, error) {
	const query = `
	SELECT id::text, title, director, year, created_at
	FROM films
	WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
	ORDER BY lower(title), id;
	`
	rows, err := s.pool.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	films, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Film, error) {
		var f models.Film
		err := row.Scan(&f.ID, &f.Title, &f.Director, &f.Year, &f.CreatedAt)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan films: %w", err)
	}
	return films, nil
}

// CreateFilm inserts a film, assigning a fresh id when none is set.
func (s *Store) CreateFilm(ctx context.Context, film models.Film) (models.Film, error) {
	if film.ID == "" {
		film.ID = uuid.NewString()
	}
	const query = `
	INSERT INTO films (id, title, director, year)
	VALUES ($1, $2, $3, $4)
	RETURNING id::text, title, director, year, created_at;
	`
	var created models.Film
	err := s.pool.QueryRow(ctx, query, film.ID, film.Title, film.Director, film.Year).
		Scan(&created.ID, &created.Title, &created.Director, &created.Year, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Film{}, storage.ErrAlreadyExists
		}
		return models.Film{}, fmt.Errorf("insert film: %w", err)
	}
	return created, nil
}

// DeleteFilm removes a film by id.
func (s *Store) DeleteFilm(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.Balance, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
