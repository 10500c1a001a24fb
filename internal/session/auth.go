package session

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/filmdesk/internal/api"
	"github.com/hongminglow/filmdesk/internal/schema"
)

// AuthKey is the cache key of the session query.
const AuthKey = "auth"

// ErrNotLoggedIn is returned by Auth.User when the server has no session.
var ErrNotLoggedIn = errors.New("not logged in")

// Client is the slice of api.Client that Auth needs.
type Client interface {
	Login(ctx context.Context, creds api.Credentials) (schema.SimpleUser, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (schema.User, error)
}

// Auth exposes the current user through a cached query and keeps it
// consistent across login and logout.
type Auth struct {
	client Client
	cache  *Cache
	query  *Query[schema.User]
}

// NewAuth registers the auth query in cache. Session data is reused for
// staleTime before the server is asked again.
func NewAuth(client Client, cache *Cache, staleTime time.Duration) *Auth {
	a := &Auth{client: client, cache: cache}
	a.query = NewQuery(AuthKey, a.fetchSession, staleTime)
	cache.Register(a.query)
	return a
}

func (a *Auth) fetchSession(ctx context.Context) (schema.User, error) {
	user, err := a.client.Session(ctx)
	if api.IsUnauthorized(err) {
		return schema.User{}, ErrNotLoggedIn
	}
	return user, err
}

// Query exposes the underlying query for state inspection and subscriptions.
func (a *Auth) Query() *Query[schema.User] {
	return a.query
}

// User returns the logged-in user.
func (a *Auth) User(ctx context.Context) (schema.User, error) {
	return a.query.Fetch(ctx)
}

// Login authenticates and expires the cached session.
func (a *Auth) Login(ctx context.Context, creds api.Credentials) (schema.SimpleUser, error) {
	user, err := a.client.Login(ctx, creds)
	if err != nil {
		return schema.SimpleUser{}, err
	}
	a.query.Invalidate()
	return user, nil
}

// Logout ends the session and expires every cached query, whether or not the
// server call succeeded.
func (a *Auth) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.cache.InvalidateAll()
	return err
}
