package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Parse decodes data into T and validates it. Any mismatch is reported as a
// *ValidationError; a zero T is never returned alongside a nil error for
// invalid input.
func Parse[T any](data []byte, opts ...Option) (T, error) {
	return parse[T](data, "", newOptions(opts))
}

func parse[T any](data []byte, path string, o options) (T, error) {
	var out T
	if len(bytes.TrimSpace(data)) == 0 || isNull(data) {
		return out, newValidationError(Issue{Path: path, Message: "is required"})
	}
	if err := decode(data, &out, path, o); err != nil {
		var zero T
		return zero, locateElementError(data, reflect.TypeOf(out), path, o, err)
	}

	issues := missingFields(data, reflect.TypeOf(out), path)
	reported := make(map[string]bool, len(issues))
	for _, issue := range issues {
		reported[issue.Path] = true
	}
	for _, issue := range validateValue(reflect.ValueOf(out), path) {
		if !reported[issue.Path] {
			issues = append(issues, issue)
		}
	}
	if len(issues) > 0 {
		var zero T
		return zero, newValidationError(issues...)
	}
	return out, nil
}

func decode(data []byte, v any, path string, o options) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if o.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return decodeError(err, path)
	}
	return nil
}

// locateElementError re-decodes the items of an array one at a time so that a
// failure carries the index of the offending element. encoding/json reports
// field names but never slice indices.
func locateElementError(data []byte, t reflect.Type, path string, o options, err error) error {
	if t == nil {
		return err
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return err
	}
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return err
	}
	for i, item := range items {
		elemPath := indexPath(path, i)
		elem := reflect.New(t.Elem())
		if elemErr := decode(item, elem.Interface(), elemPath, o); elemErr != nil {
			return locateElementError(item, t.Elem(), elemPath, o, elemErr)
		}
	}
	return err
}

func decodeError(err error, path string) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return newValidationError(Issue{Path: path, Message: fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset)})
	case errors.As(err, &typeErr):
		return newValidationError(Issue{
			Path:    joinPath(path, typeErr.Field),
			Message: fmt.Sprintf("expected %s, got %s", typeName(typeErr.Type), typeErr.Value),
		})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return newValidationError(Issue{Path: joinPath(path, field), Message: "is not allowed"})
	default:
		return newValidationError(Issue{Path: path, Message: err.Error()})
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if t == reflect.TypeOf(ID{}) {
		return "string or number"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.String()
}
