package api

import (
	"context"
	"net/http"

	"github.com/hongminglow/filmdesk/internal/schema"
)

// Credentials are sent to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration creates a new account.
type Registration struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (schema.SimpleUser, error) {
	data, err := c.do(ctx, http.MethodPost, "/login", nil, creds)
	if err != nil {
		return schema.SimpleUser{}, err
	}
	return unwrap[schema.SimpleUser](data)
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, reg Registration) (schema.SimpleUser, error) {
	data, err := c.do(ctx, http.MethodPost, "/register", nil, reg)
	if err != nil {
		return schema.SimpleUser{}, err
	}
	return unwrap[schema.SimpleUser](data)
}

// Session returns the user owning the current session.
func (c *Client) Session(ctx context.Context) (schema.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/session", nil, nil)
	if err != nil {
		return schema.User{}, err
	}
	return unwrap[schema.User](data)
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	data, err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	if err != nil {
		return err
	}
	_, err = unwrap[struct{}](data)
	return err
}
