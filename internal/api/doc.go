// Package api is the typed client for the filmdesk HTTP API.
//
// Every endpoint method performs exactly one request, validates the response
// against its declared shape (see package schema) and returns the unwrapped
// payload. Failures surface as one of:
//
//   - *APIError: the server answered with {"status":"error","message":...}.
//     Error() is the server message verbatim.
//   - *HTTPError: the server answered with a non-2xx status. When the body
//     is an error envelope, errors.As(err, &apiErr) also yields the *APIError.
//   - *schema.ValidationError: the body did not match the expected shape.
//   - ErrResponseTooLarge: the body was larger than the client buffers.
//   - any other error: the transport failed (dial, timeout, cancellation).
//
// Nothing is retried.
package api
