package cli

import (
	"bufio"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/filmdesk/internal/api"
	"github.com/hongminglow/filmdesk/internal/schema"
	"github.com/hongminglow/filmdesk/internal/session"
)

// FilmsKey is the cache key of the unfiltered film list.
const FilmsKey = "films"

// Backend is the part of api.Client the CLI calls directly.
type Backend interface {
	session.Client
	Register(ctx context.Context, reg api.Registration) (schema.SimpleUser, error)
	GetFilms(ctx context.Context, q string) ([]schema.Film, error)
	CreateFilm(ctx context.Context, film api.NewFilm) (schema.Film, error)
	DeleteFilm(ctx context.Context, id string) ([]schema.Film, error)
}

// App is an interactive filmdesk session.
type App struct {
	backend Backend
	cache   *session.Cache
	auth    *session.Auth
	films   *session.Query[[]schema.Film]

	in  *bufio.Reader
	out io.Writer
	log *zap.SugaredLogger
}

// NewApp wires a backend into session-scoped caches. staleTime bounds how
// long the current user and the film list are reused without a refetch.
func NewApp(backend Backend, staleTime time.Duration, in io.Reader, out io.Writer, log *zap.SugaredLogger) *App {
	cache := session.NewCache()
	a := &App{
		backend: backend,
		cache:   cache,
		auth:    session.NewAuth(backend, cache, staleTime),
		in:      bufio.NewReader(in),
		out:     out,
		log:     log,
	}
	a.films = session.NewQuery(FilmsKey, func(ctx context.Context) ([]schema.Film, error) {
		return backend.GetFilms(ctx, "")
	}, staleTime)
	cache.Register(a.films)

	a.auth.Query().Subscribe(func(s session.Snapshot[schema.User]) {
		log.Debugw("auth state", "status", s.Status.String(), "fetching", s.Fetching)
	})
	return a
}

// prompt reflects the cached session without touching the network.
func (a *App) prompt() string {
	snap := a.auth.Query().Snapshot()
	if snap.Status == session.StatusSuccess {
		return "filmdesk (" + snap.Data.Username + ")> "
	}
	return "filmdesk> "
}
