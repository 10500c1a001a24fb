package api

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/filmdesk/internal/config"
	"github.com/hongminglow/filmdesk/internal/logger"
	"github.com/hongminglow/filmdesk/internal/schema"
	"github.com/hongminglow/filmdesk/internal/server"
	"github.com/hongminglow/filmdesk/internal/storage/sqlite"
)

func TestClientAgainstServer(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	defer store.Close()

	srvCfg := config.Config{
		JWTSecret:     "e2e-secret",
		JWTIssuer:     "filmdesk",
		JWTTTL:        time.Hour,
		CORSOrigins:   []string{"*"},
		SessionCookie: "filmdesk_session",
	}
	srv := httptest.NewServer(server.NewHandler(srvCfg, store, logger.Nop()))
	defer srv.Close()

	c, err := New(config.Client{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	registered, err := c.Register(ctx, Registration{Username: "neo", Name: "Neo", Email: "neo@matrix.io", Password: "followthewhiterabbit"})
	require.NoError(t, err)
	assert.Equal(t, schema.SimpleUser{Username: "neo", Name: "Neo"}, registered)

	_, err = c.Session(ctx)
	assert.True(t, IsUnauthorized(err))

	_, err = c.Login(ctx, Credentials{Username: "neo", Password: "wrong-password"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	user, err := c.Login(ctx, Credentials{Username: "neo", Password: "followthewhiterabbit"})
	require.NoError(t, err)
	assert.Equal(t, "neo", user.Username)

	me, err := c.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "neo@matrix.io", me.Email)
	assert.True(t, me.ID.IsNumber())

	heat, err := c.CreateFilm(ctx, NewFilm{Title: "Heat", Director: "Michael Mann", Year: 1995})
	require.NoError(t, err)
	_, err = c.CreateFilm(ctx, NewFilm{Title: "Alien", Year: 1979})
	require.NoError(t, err)

	films, err := c.GetFilms(ctx, "")
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, "Alien", films[0].Title)

	films, err = c.GetFilms(ctx, "hea")
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, heat, films[0])

	remaining, err := c.DeleteFilm(ctx, heat.ID.String())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Alien", remaining[0].Title)

	_, err = c.DeleteFilm(ctx, heat.ID.String())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not found", apiErr.Message)

	require.NoError(t, c.Logout(ctx))
	_, err = c.Session(ctx)
	assert.True(t, IsUnauthorized(err))
}
