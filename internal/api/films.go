package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hongminglow/filmdesk/internal/schema"
)

// NewFilm is the payload for creating a film.
type NewFilm struct {
	Title    string `json:"title"`
	Director string `json:"director,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// GetFilms lists films. An empty q sends no query string at all.
func (c *Client) GetFilms(ctx context.Context, q string) ([]schema.Film, error) {
	var query url.Values
	if q != "" {
		query = url.Values{"q": {q}}
	}
	data, err := c.do(ctx, http.MethodGet, "/films", query, nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]schema.Film](data)
}

// DeleteFilm deletes the film with the given id and returns the films that remain.
func (c *Client) DeleteFilm(ctx context.Context, id string) ([]schema.Film, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	data, err := c.do(ctx, http.MethodDelete, "/films/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]schema.Film](data)
}

// CreateFilm adds a film to the catalogue.
func (c *Client) CreateFilm(ctx context.Context, film NewFilm) (schema.Film, error) {
	data, err := c.do(ctx, http.MethodPost, "/films", nil, film)
	if err != nil {
		return schema.Film{}, err
	}
	return unwrap[schema.Film](data)
}
