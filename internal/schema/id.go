package schema

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
)

// ID is an identifier that the server may send either as a JSON string or
// as a JSON number. The original kind is kept so the value marshals back
// unchanged.
type ID struct {
	value  string
	number bool
}

// NewID returns a string-kind identifier.
func NewID(s string) ID {
	return ID{value: s}
}

// IntID returns a number-kind identifier.
func IntID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), number: true}
}

// String returns the textual form of the identifier, suitable for URL paths.
func (id ID) String() string {
	return id.value
}

// IsNumber reports whether the identifier arrived as a JSON number.
func (id ID) IsNumber() bool {
	return id.number
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id.value == "" && !id.number
}

// MarshalJSON writes the identifier in the kind it was created with.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.number {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ID{value: n.String(), number: true}
		return nil
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(c), Type: reflect.TypeOf(ID{})}
	}
}

func jsonKind(c byte) string {
	switch c {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "value"
	}
}
