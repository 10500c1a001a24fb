package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hongminglow/filmdesk/internal/schema"
)

// ErrEmptyID is returned when an endpoint that addresses a record is called
// without an id.
var ErrEmptyID = errors.New("api: id is required")

// ErrResponseTooLarge is returned when a response body exceeds the size the
// client is willing to buffer.
var ErrResponseTooLarge = errors.New("api: response body too large")

// APIError is an application-level failure reported by the server in an
// error envelope.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPError reports a response with a non-2xx status code.
type HTTPError struct {
	StatusCode int
	Body       []byte
	apiErr     *APIError
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status, Body: body}
	if env, err := schema.ParseEnvelope[json.RawMessage](body); err == nil && !env.OK() {
		e.apiErr = &APIError{Message: env.Message}
	}
	return e
}

func (e *HTTPError) Error() string {
	if e.apiErr != nil {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.apiErr.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap exposes the server's error envelope, if the body carried one.
func (e *HTTPError) Unwrap() error {
	if e.apiErr == nil {
		return nil
	}
	return e.apiErr
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
