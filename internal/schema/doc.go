// Package schema declares the shapes of the JSON documents returned by the
// filmdesk API and validates incoming payloads against them.
//
// Shapes are plain Go structs. The json tag names the wire field and the
// validate tag (github.com/go-playground/validator/v10) carries constraints
// such as email format or numeric range. A field whose json tag has no
// omitempty must be present and non-null in the input.
//
// Parse decodes and validates a single value. ParseEnvelope decodes the
// tagged success/error wrapper every endpoint responds with:
//
//	{"status": "success", "data": <T>}
//	{"status": "error", "message": "<text>"}
//
// Every failure is reported as a *ValidationError listing the offending
// field paths (for example "data[2].email").
package schema
