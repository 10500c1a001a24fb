package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/filmdesk/internal/models"
	"github.com/hongminglow/filmdesk/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "films.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "films.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	var n int
	require.NoError(t, second.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('users', 'films')`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestStore_Ping(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Ping(context.Background()))

	require.NoError(t, store.Close())
	assert.Error(t, store.Ping(context.Background()))
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	created, err := store.CreateUser(ctx, models.User{
		Username:     "neo",
		Name:         "Thomas Anderson",
		Email:        "neo@matrix.io",
		Balance:      99.5,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := store.FindByUsername(ctx, "neo")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	byID, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	_, err = store.CreateUser(ctx, models.User{Username: "neo", Email: "other@matrix.io", PasswordHash: "x"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.FindByUsername(ctx, "smith")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Films(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, f := range []models.Film{
		{Title: "The Matrix", Director: "Wachowski", Year: 1999},
		{Title: "alien", Year: 1979},
		{ID: "fixed-id", Title: "Matrix Reloaded", Year: 2003},
	} {
		_, err := store.CreateFilm(ctx, f)
		require.NoError(t, err)
	}

	all, err := store.ListFilms(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"alien", "Matrix Reloaded", "The Matrix"}, titles(all))
	assert.NotEmpty(t, all[0].ID)

	matched, err := store.ListFilms(ctx, "MATRIX")
	require.NoError(t, err)
	assert.Equal(t, []string{"Matrix Reloaded", "The Matrix"}, titles(matched))

	none, err := store.ListFilms(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = store.CreateFilm(ctx, models.Film{ID: "fixed-id", Title: "dup"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	require.NoError(t, store.DeleteFilm(ctx, "fixed-id"))
	assert.ErrorIs(t, store.DeleteFilm(ctx, "fixed-id"), storage.ErrNotFound)

	rest, err := store.ListFilms(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func titles(films []models.Film) []string {
	out := make([]string, len(films))
	for i, f := range films {
		out[i] = f.Title
	}
	return out
}
